package domain

import (
	"context"

	auth "github.com/Lexv0lk/vending-machine/internal/auth/domain"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
)

//go:generate mockgen -source=services.go -destination=../../../gen/mocks/gateway/services.go -package=mocks

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (store.Account, error)
	Login(ctx context.Context, username, password string) (auth.LoginResult, error)
	Resolve(ctx context.Context, token string) (auth.Identity, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, accountID string) int
	Account(ctx context.Context, accountID string) (store.Account, int, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, accountID string) error
}

type LedgerService interface {
	Deposit(ctx context.Context, actor store.Actor, accountID string, coin int64) (int64, error)
	Reset(ctx context.Context, actor store.Actor, accountID string) (int64, error)
}

type PurchaseService interface {
	Buy(ctx context.Context, actor store.Actor, productID string, quantity int64) (store.PurchaseResult, error)
}

type InventoryService interface {
	Create(actor store.Actor, name string, cost, quantity int64) (store.Product, error)
	Update(actor store.Actor, productID string, update store.ProductUpdate) (store.Product, error)
	Delete(actor store.Actor, productID string) error
	Get(productID string) (store.Product, error)
	List() []store.Product
}
