package application

import (
	"testing"

	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	accounts  *AccountBook
	inventory *Inventory
	buyer     domain.Actor
	seller    domain.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	accounts := NewAccountBook(nil)
	inventory := NewInventory(accounts, nil)

	buyer, err := accounts.Create("buyer", "hash", domain.RoleBuyer)
	require.NoError(t, err)

	seller, err := accounts.Create("seller", "hash", domain.RoleSeller)
	require.NoError(t, err)

	return fixture{
		accounts:  accounts,
		inventory: inventory,
		buyer:     buyer.Actor(),
		seller:    seller.Actor(),
	}
}

func (f fixture) setBalance(t *testing.T, balance int64) {
	t.Helper()

	err := f.accounts.withAccount(f.buyer.AccountID, func(account *domain.Account) error {
		account.Balance = balance
		return nil
	})
	require.NoError(t, err)
}

func (f fixture) balance(t *testing.T) int64 {
	t.Helper()

	account, err := f.accounts.Get(f.buyer.AccountID)
	require.NoError(t, err)

	return account.Balance
}

func (f fixture) addProduct(t *testing.T, name string, cost, quantity int64) domain.Product {
	t.Helper()

	product, err := f.inventory.Create(f.seller, name, cost, quantity)
	require.NoError(t, err)

	return product
}

func (f fixture) stock(t *testing.T, productID string) int64 {
	t.Helper()

	product, err := f.inventory.Get(productID)
	require.NoError(t, err)

	return product.Quantity
}
