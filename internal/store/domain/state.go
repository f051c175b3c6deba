package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=state.go -destination=../../../gen/mocks/store/state.go -package=mocks

// ChangeTracker receives a copy of every committed entity mutation.
// Implementations must not block: they are called with entity locks held.
type ChangeTracker interface {
	AccountChanged(account Account)
	AccountRemoved(accountID string)
	ProductChanged(product Product)
	ProductRemoved(productID string)
}

type SnapshotBatch struct {
	Accounts        []Account
	Products        []Product
	RemovedProducts []string
	RemovedAccounts []string
}

func (b SnapshotBatch) Empty() bool {
	return len(b.Accounts) == 0 && len(b.Products) == 0 &&
		len(b.RemovedProducts) == 0 && len(b.RemovedAccounts) == 0
}

type StateRepository interface {
	LoadAccounts(ctx context.Context) ([]Account, error)
	LoadProducts(ctx context.Context) ([]Product, error)
	ApplySnapshot(ctx context.Context, batch SnapshotBatch) error
}

type EventKind string

const (
	EventDeposit  EventKind = "deposit"
	EventReset    EventKind = "reset"
	EventPurchase EventKind = "purchase"
)

type LedgerEvent struct {
	Kind       EventKind `json:"kind"`
	AccountID  string    `json:"accountId"`
	Amount     int64     `json:"amount"`
	Balance    int64     `json:"balance"`
	ProductID  string    `json:"productId,omitempty"`
	Quantity   int64     `json:"quantity,omitempty"`
	Change     []int64   `json:"change,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

type noopTracker struct{}

func (noopTracker) AccountChanged(Account) {}
func (noopTracker) AccountRemoved(string) {}
func (noopTracker) ProductChanged(Product) {}
func (noopTracker) ProductRemoved(string) {}

// NoopTracker is used when nothing persists the in-memory state.
var NoopTracker ChangeTracker = noopTracker{}
