package bootstrap

import (
	"time"

	authapp "github.com/Lexv0lk/vending-machine/internal/auth/application"
	auth "github.com/Lexv0lk/vending-machine/internal/auth/domain"
	redisinfra "github.com/Lexv0lk/vending-machine/internal/auth/infrastructure/redis"
	httpwrap "github.com/Lexv0lk/vending-machine/internal/gateway/infrastructure/http"
	"github.com/Lexv0lk/vending-machine/internal/pkg/jwt"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/application"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/gin-gonic/gin"
)

// Engine is the in-memory machine with its session registry and the HTTP surface over it.
type Engine struct {
	Accounts      *application.AccountBook
	Inventory     *application.Inventory
	Ledger        *application.Ledger
	Purchases     *application.PurchaseCoordinator
	Sessions      *authapp.SessionRegistry
	Authenticator *authapp.Authenticator
	Router        *gin.Engine
}

type EngineDeps struct {
	Accounts  []domain.Account
	Products  []domain.Product
	Tracker   domain.ChangeTracker
	Publisher domain.EventPublisher
	Limiter   auth.AttemptLimiter
	Hasher    auth.PasswordHasher

	JwtSecret  string
	SessionTTL time.Duration
}

func NewEngine(deps EngineDeps, logger logging.Logger) (*Engine, error) {
	tracker := deps.Tracker
	if tracker == nil {
		tracker = domain.NoopTracker
	}

	accounts := application.NewAccountBook(tracker)
	accounts.Load(deps.Accounts)

	inventory := application.NewInventory(accounts, tracker)
	inventory.Load(deps.Products)

	ledger := application.NewLedger(accounts, deps.Publisher, logger)
	purchases := application.NewPurchaseCoordinator(accounts, inventory, deps.Publisher, logger)
	sessions := authapp.NewSessionRegistry(deps.SessionTTL, logger)

	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewArgonPasswordHasher(nil)
	}

	limiter := deps.Limiter
	if limiter == nil {
		limiter = redisinfra.NopLimiter{}
	}

	authenticator := authapp.NewAuthenticator(
		accounts,
		inventory,
		sessions,
		hasher,
		limiter,
		jwt.NewJWTTokenIssuer(),
		jwt.NewJWTTokenParser(),
		deps.JwtSecret,
		logger,
	)

	router, err := httpwrap.NewRouter(httpwrap.Services{
		Auth:      authenticator,
		Ledger:    ledger,
		Purchases: purchases,
		Inventory: inventory,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Accounts:      accounts,
		Inventory:     inventory,
		Ledger:        ledger,
		Purchases:     purchases,
		Sessions:      sessions,
		Authenticator: authenticator,
		Router:        router,
	}, nil
}
