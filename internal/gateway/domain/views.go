package domain

import (
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/shopspring/decimal"
)

// Money is rendered both in cents and as a fixed two-digit amount, e.g. 120 and "1.20".
type Money struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func NewMoney(cents int64) Money {
	return Money{
		Cents:   cents,
		Display: decimal.New(cents, -2).StringFixed(2),
	}
}

type AccountView struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	Balance        *Money `json:"balance,omitempty"`
	ActiveSessions int    `json:"activeSessions"`
}

func NewAccountView(account store.Account, activeSessions int) AccountView {
	view := AccountView{
		ID:             account.ID,
		Username:       account.Username,
		Role:           string(account.Role),
		ActiveSessions: activeSessions,
	}

	if account.Role == store.RoleBuyer {
		balance := NewMoney(account.Balance)
		view.Balance = &balance
	}

	return view
}

type ProductView struct {
	ID       string `json:"id"`
	SellerID string `json:"sellerId"`
	Name     string `json:"name"`
	Cost     Money  `json:"cost"`
	Quantity int64  `json:"quantity"`
}

func NewProductView(product store.Product) ProductView {
	return ProductView{
		ID:       product.ID,
		SellerID: product.OwnerID,
		Name:     product.Name,
		Cost:     NewMoney(product.Cost),
		Quantity: product.Quantity,
	}
}

type PurchaseView struct {
	ProductID string  `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Total     Money   `json:"total"`
	Change    []int64 `json:"change"`
}

func NewPurchaseView(result store.PurchaseResult) PurchaseView {
	change := result.Change
	if change == nil {
		change = []int64{}
	}

	return PurchaseView{
		ProductID: result.ProductID,
		Quantity:  result.Quantity,
		Total:     NewMoney(result.Total),
		Change:    change,
	}
}

type LoginView struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Warning   string `json:"warning,omitempty"`
}
