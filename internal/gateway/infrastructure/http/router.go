package http

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

type Services struct {
	Auth      domain.AuthService
	Ledger    domain.LedgerService
	Purchases domain.PurchaseService
	Inventory domain.InventoryService
}

// RegisterValidators makes gin's shared validator report fields by their JSON names. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}

		engine.RegisterTagNameFunc(jsonFieldName)
	})

	return registerErr
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

func NewRouter(services Services, logger logging.Logger) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := NewAuthHandler(services.Auth, logger)
	vendingHandler := NewVendingHandler(services.Ledger, services.Purchases, logger)
	productHandler := NewProductHandler(services.Inventory, logger)

	api := router.Group("/api")
	{
		api.POST("/user", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/products", productHandler.List)
		api.GET("/products/:"+ProductIDKey, productHandler.Get)

		authenticated := api.Group("/", NewAuthMiddleware(services.Auth, logger))
		{
			authenticated.GET("/user", authHandler.Me)
			authenticated.PUT("/user", authHandler.ChangePassword)
			authenticated.DELETE("/user", authHandler.DeleteMe)
			authenticated.POST("/logout", authHandler.Logout)
			authenticated.POST("/logout/all", authHandler.LogoutAll)

			authenticated.POST("/deposit", vendingHandler.Deposit)
			authenticated.POST("/reset", vendingHandler.Reset)
			authenticated.POST("/buy", vendingHandler.Buy)

			authenticated.POST("/products", productHandler.Create)
			authenticated.PUT("/products/:"+ProductIDKey, productHandler.Update)
			authenticated.DELETE("/products/:"+ProductIDKey, productHandler.Delete)
		}
	}

	return router, nil
}
