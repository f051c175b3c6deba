package postgres

import (
	"context"
	"fmt"

	"github.com/Lexv0lk/vending-machine/internal/pkg/database"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
)

const (
	selectAccountsSQL = `SELECT id, username, role, password_hash, balance FROM accounts`
	selectProductsSQL = `SELECT id, owner_id, name, cost, quantity FROM products`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
	deleteAccountSQL = `DELETE FROM accounts WHERE id = $1`

	upsertAccountSQL = `INSERT INTO accounts (id, username, role, password_hash, balance)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				username = EXCLUDED.username,
				role = EXCLUDED.role,
				password_hash = EXCLUDED.password_hash,
				balance = EXCLUDED.balance`

	// A product whose owner is already gone is skipped instead of failing the whole batch.
	upsertProductSQL = `INSERT INTO products (id, owner_id, name, cost, quantity)
			SELECT $1::text, $2::text, $3::text, $4::bigint, $5::bigint
			WHERE EXISTS (SELECT 1 FROM accounts WHERE id = $2::text)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				cost = EXCLUDED.cost,
				quantity = EXCLUDED.quantity`
)

type StateRepository struct {
	querier   database.Querier
	txManager database.TxManager
	logger    logging.Logger
}

func NewStateRepository(querier database.Querier, txManager database.TxManager, logger logging.Logger) *StateRepository {
	return &StateRepository{
		querier:   querier,
		txManager: txManager,
		logger:    logger,
	}
}

func (sr *StateRepository) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := sr.querier.Query(ctx, selectAccountsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		var role string

		if err := rows.Scan(&account.ID, &account.Username, &role, &account.PasswordHash, &account.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		account.Role, err = domain.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.ID, err)
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

func (sr *StateRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := sr.querier.Query(ctx, selectProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product

		if err := rows.Scan(&product.ID, &product.OwnerID, &product.Name, &product.Cost, &product.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

// ApplySnapshot writes a batch in one transaction. Removals go first so a
// freed username can be taken again by an account in the same batch.
func (sr *StateRepository) ApplySnapshot(ctx context.Context, batch domain.SnapshotBatch) error {
	return sr.txManager.WithinTransaction(ctx, func(ctx context.Context, executor database.QueryExecuter) error {
		for _, productID := range batch.RemovedProducts {
			if _, err := executor.Exec(ctx, deleteProductSQL, productID); err != nil {
				return fmt.Errorf("failed to delete product %s: %w", productID, err)
			}
		}

		for _, accountID := range batch.RemovedAccounts {
			if _, err := executor.Exec(ctx, deleteAccountSQL, accountID); err != nil {
				return fmt.Errorf("failed to delete account %s: %w", accountID, err)
			}
		}

		for _, account := range batch.Accounts {
			_, err := executor.Exec(ctx, upsertAccountSQL,
				account.ID, account.Username, string(account.Role), account.PasswordHash, account.Balance)
			if err != nil {
				return fmt.Errorf("failed to save account %s: %w", account.ID, err)
			}
		}

		for _, product := range batch.Products {
			tag, err := executor.Exec(ctx, upsertProductSQL,
				product.ID, product.OwnerID, product.Name, product.Cost, product.Quantity)
			if err != nil {
				return fmt.Errorf("failed to save product %s: %w", product.ID, err)
			}

			if tag.RowsAffected() == 0 {
				sr.logger.Warn("skipped product of a removed owner", "product_id", product.ID, "owner_id", product.OwnerID)
			}
		}

		return nil
	})
}
