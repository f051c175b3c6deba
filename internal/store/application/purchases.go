package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
)

type PurchaseCoordinator struct {
	accounts  *AccountBook
	inventory *Inventory
	publisher domain.EventPublisher
	logger    logging.Logger
}

func NewPurchaseCoordinator(accounts *AccountBook, inventory *Inventory, publisher domain.EventPublisher, logger logging.Logger) *PurchaseCoordinator {
	return &PurchaseCoordinator{
		accounts:  accounts,
		inventory: inventory,
		publisher: publisher,
		logger:    logger,
	}
}

// Buy spends the whole balance of the buyer on quantity units of one product
// and pays the remainder back as coins. It either commits both the stock and
// the balance change or neither.
//
// Locks are taken account first, product second.
func (pc *PurchaseCoordinator) Buy(ctx context.Context, actor domain.Actor, productID string, quantity int64) (domain.PurchaseResult, error) {
	state := domain.PurchaseValidating

	result, err := pc.buy(actor, productID, quantity, &state)
	if err != nil {
		if errors.Is(err, &domain.UnrepresentableAmountError{}) {
			pc.logger.Error("broken balance invariant during purchase",
				"account_id", actor.AccountID,
				"product_id", productID,
				"error", err.Error(),
			)
		}

		return domain.PurchaseResult{}, fmt.Errorf("purchase %s while %s: %w", domain.PurchaseAborted, state, err)
	}

	publishEvent(ctx, pc.publisher, pc.logger, domain.LedgerEvent{
		Kind:      domain.EventPurchase,
		AccountID: actor.AccountID,
		Amount:    result.Total,
		ProductID: result.ProductID,
		Quantity:  result.Quantity,
		Change:    result.Change,
	})

	return result, nil
}

func (pc *PurchaseCoordinator) buy(actor domain.Actor, productID string, quantity int64, state *domain.PurchaseState) (domain.PurchaseResult, error) {
	if err := domain.Authorize(actor, domain.ActionBuy, domain.AccountResource(actor.AccountID)); err != nil {
		return domain.PurchaseResult{}, err
	}

	if err := domain.ValidatePurchaseQuantity(quantity); err != nil {
		return domain.PurchaseResult{}, err
	}

	if _, err := pc.inventory.Get(productID); err != nil {
		return domain.PurchaseResult{}, err
	}

	var result domain.PurchaseResult

	err := pc.accounts.withAccount(actor.AccountID, func(account *domain.Account) error {
		return pc.inventory.withProduct(productID, func(product *domain.Product) error {
			*state = domain.PurchaseReserving

			unitCost, err := reserve(product, quantity)
			if err != nil {
				return err
			}

			*state = domain.PurchaseSettling

			if quantity > math.MaxInt64/unitCost || account.Balance < unitCost*quantity {
				return &domain.InsufficientFundsError{
					Msg:      fmt.Sprintf("%d units cost more than the balance of %d", quantity, account.Balance),
					Balance:  account.Balance,
					Required: requiredFor(unitCost, quantity),
				}
			}

			total := unitCost * quantity
			change, err := domain.MakeChange(account.Balance - total)
			if err != nil {
				return err
			}

			account.Balance = 0
			*state = domain.PurchaseCommitted

			result = domain.PurchaseResult{
				ProductID: product.ID,
				Quantity:  quantity,
				Total:     total,
				Change:    change,
			}

			return nil
		})
	})
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	return result, nil
}

func requiredFor(unitCost, quantity int64) int64 {
	if quantity > math.MaxInt64/unitCost {
		return math.MaxInt64
	}

	return unitCost * quantity
}
