//go:build integration

package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	gateway "github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/database"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	scenarioPort = ":18080"
	scenarioURL  = "http://localhost" + scenarioPort + "/api"
)

func call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, scenarioURL+path, &payload)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(respBody) > 0 {
		require.NoError(t, json.Unmarshal(respBody, out))
	}

	return resp.StatusCode
}

// startApp runs the app until the returned stop function is called.
func startApp(t *testing.T, cfg StoreConfig) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	app := NewStoreApp(cfg, logging.NopLogger)
	go func() {
		done <- app.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(scenarioURL + "/products")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 30*time.Second, 200*time.Millisecond)

	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestStoreApp_StateSurvivesRestart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pg, err := postgres.Run(
		t.Context(),
		"postgres:16-alpine",
		postgres.WithDatabase("vending_db"),
		postgres.WithUsername("admin"),
		postgres.WithPassword("password"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dbHost, err := pg.Host(t.Context())
	require.NoError(t, err)
	dbPort, err := pg.MappedPort(t.Context(), "5432/tcp")
	require.NoError(t, err)

	cfg := DefaultStoreConfig()
	cfg.HttpPort = scenarioPort
	cfg.JwtSecret = "secret-key"
	cfg.SyncInterval = 100 * time.Millisecond
	cfg.DbSettings = database.PostgresSettings{
		User:       "admin",
		Password:   "password",
		Host:       dbHost,
		Port:       dbPort.Port(),
		DBName:     "vending_db",
		SSlEnabled: false,
	}

	stop := startApp(t, cfg)

	require.Equal(t, http.StatusCreated, call(t, http.MethodPost, "/user", "", gin.H{"username": "sam", "password": "pw", "role": "seller"}, nil))
	require.Equal(t, http.StatusCreated, call(t, http.MethodPost, "/user", "", gin.H{"username": "bob", "password": "pw", "role": "buyer"}, nil))

	var sellerLogin gateway.LoginView
	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/login", "", gin.H{"username": "sam", "password": "pw"}, &sellerLogin))

	var product gateway.ProductView
	require.Equal(t, http.StatusCreated, call(t, http.MethodPost, "/products", sellerLogin.Token, gin.H{"name": "cup", "cost": 35, "quantity": 10}, &product))

	var buyerLogin gateway.LoginView
	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/login", "", gin.H{"username": "bob", "password": "pw"}, &buyerLogin))

	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/deposit", buyerLogin.Token, gin.H{"coin": 100}, nil))
	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/deposit", buyerLogin.Token, gin.H{"coin": 20}, nil))

	var purchase gateway.PurchaseView
	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/buy", buyerLogin.Token, gin.H{"productId": product.ID, "quantity": 3}, &purchase))
	assert.Equal(t, []int64{10, 5}, purchase.Change)

	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/deposit", buyerLogin.Token, gin.H{"coin": 50}, nil))

	stop()

	stop = startApp(t, cfg)
	defer stop()

	// Sessions do not survive a restart.
	assert.Equal(t, http.StatusUnauthorized, call(t, http.MethodGet, "/user", buyerLogin.Token, nil, nil))

	require.Equal(t, http.StatusOK, call(t, http.MethodPost, "/login", "", gin.H{"username": "bob", "password": "pw"}, &buyerLogin))

	var me gateway.AccountView
	require.Equal(t, http.StatusOK, call(t, http.MethodGet, "/user", buyerLogin.Token, nil, &me))
	require.NotNil(t, me.Balance)
	assert.Equal(t, int64(50), me.Balance.Cents)

	var restored gateway.ProductView
	require.Equal(t, http.StatusOK, call(t, http.MethodGet, "/products/"+product.ID, "", nil, &restored))
	assert.Equal(t, int64(7), restored.Quantity)
}
