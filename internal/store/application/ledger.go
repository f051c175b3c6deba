package application

import (
	"context"
	"math"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
)

type Ledger struct {
	accounts  *AccountBook
	publisher domain.EventPublisher
	logger    logging.Logger
}

func NewLedger(accounts *AccountBook, publisher domain.EventPublisher, logger logging.Logger) *Ledger {
	return &Ledger{
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
	}
}

// Deposit adds one coin to the account and returns the new balance.
func (l *Ledger) Deposit(ctx context.Context, actor domain.Actor, accountID string, coin int64) (int64, error) {
	if err := domain.Authorize(actor, domain.ActionDeposit, domain.AccountResource(accountID)); err != nil {
		return 0, err
	}

	if err := domain.ValidateDenomination(coin); err != nil {
		return 0, err
	}

	var balance int64
	err := l.accounts.withAccount(accountID, func(account *domain.Account) error {
		if account.Balance > math.MaxInt64-coin {
			return &domain.InvalidArgumentsError{Msg: "balance limit reached, buy something or reset first"}
		}

		account.Balance += coin
		balance = account.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.publish(ctx, domain.LedgerEvent{
		Kind:      domain.EventDeposit,
		AccountID: accountID,
		Amount:    coin,
		Balance:   balance,
	})

	return balance, nil
}

// Reset zeroes the balance and returns the amount that was cleared.
func (l *Ledger) Reset(ctx context.Context, actor domain.Actor, accountID string) (int64, error) {
	if err := domain.Authorize(actor, domain.ActionReset, domain.AccountResource(accountID)); err != nil {
		return 0, err
	}

	var cleared int64
	err := l.accounts.withAccount(accountID, func(account *domain.Account) error {
		cleared = account.Balance
		account.Balance = 0
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.publish(ctx, domain.LedgerEvent{
		Kind:      domain.EventReset,
		AccountID: accountID,
		Amount:    cleared,
	})

	return cleared, nil
}

// Balance is a plain read and needs no particular role.
func (l *Ledger) Balance(accountID string) (int64, error) {
	account, err := l.accounts.Get(accountID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (l *Ledger) publish(ctx context.Context, event domain.LedgerEvent) {
	publishEvent(ctx, l.publisher, l.logger, event)
}

func publishEvent(ctx context.Context, publisher domain.EventPublisher, logger logging.Logger, event domain.LedgerEvent) {
	if publisher == nil {
		return
	}

	event.OccurredAt = time.Now().UTC()

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish ledger event",
			"kind", string(event.Kind),
			"account_id", event.AccountID,
			"error", err.Error(),
		)
	}
}
