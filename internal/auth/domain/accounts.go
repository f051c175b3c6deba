package domain

import (
	"context"
	"time"

	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
)

//go:generate mockgen -source=accounts.go -destination=../../../gen/mocks/auth/accounts.go -package=mocks

type AccountDirectory interface {
	Create(username, passwordHash string, role store.Role) (store.Account, error)
	Get(accountID string) (store.Account, error)
	FindByUsername(username string) (store.Account, error)
	UpdateCredential(accountID, passwordHash string) error
	Delete(accountID string) (store.Account, error)
}

type ProductPurger interface {
	DeleteByOwner(ownerID string) int
}

// AttemptLimiter counts failed logins per key inside a sliding window.
type AttemptLimiter interface {
	Register(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Reset(ctx context.Context, key string) error
}

type Identity struct {
	Actor     store.Actor
	SessionID string
}

type LoginResult struct {
	Token   string
	Session Session
	Warning *DuplicateSessionWarning
}
