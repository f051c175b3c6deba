package application

import (
	"sync"
	"sync/atomic"
	"testing"

	storemocks "github.com/Lexv0lk/vending-machine/gen/mocks/store"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Deposit(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name            string
		coin            int64
		actorFn         func(f fixture) domain.Actor
		targetFn        func(f fixture) string
		startBalance    int64
		expectedBalance int64
		expectedErr     error
	}

	self := func(f fixture) string { return f.buyer.AccountID }
	asBuyer := func(f fixture) domain.Actor { return f.buyer }

	tests := []testCase{
		{name: "five", coin: 5, actorFn: asBuyer, targetFn: self, expectedBalance: 5},
		{name: "hundred on top", coin: 100, actorFn: asBuyer, targetFn: self, startBalance: 35, expectedBalance: 135},
		{name: "invalid denomination", coin: 3, actorFn: asBuyer, targetFn: self, startBalance: 35, expectedBalance: 35, expectedErr: &domain.InvalidDenominationError{}},
		{name: "not a coin", coin: 25, actorFn: asBuyer, targetFn: self, expectedErr: &domain.InvalidDenominationError{}},
		{
			name:        "seller cannot deposit",
			coin:        10,
			actorFn:     func(f fixture) domain.Actor { return f.seller },
			targetFn:    func(f fixture) string { return f.seller.AccountID },
			expectedErr: &domain.RoleViolationError{},
		},
		{
			name:        "other account",
			coin:        10,
			actorFn:     asBuyer,
			targetFn:    func(f fixture) string { return "someone-else" },
			expectedErr: &domain.ForbiddenError{},
		},
		{
			name:        "deleted account",
			coin:        10,
			actorFn:     func(f fixture) domain.Actor { return domain.Actor{AccountID: "ghost", Role: domain.RoleBuyer} },
			targetFn:    func(f fixture) string { return "ghost" },
			expectedErr: &domain.NotFoundError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.setBalance(t, tt.startBalance)
			ledger := NewLedger(f.accounts, nil, logging.NopLogger)

			balance, err := ledger.Deposit(t.Context(), tt.actorFn(f), tt.targetFn(f), tt.coin)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
			assert.Equal(t, tt.expectedBalance, f.balance(t))
		})
	}
}

func TestLedger_DepositSequence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ledger := NewLedger(f.accounts, nil, logging.NopLogger)

	var balance int64
	var err error
	for _, coin := range []int64{5, 10, 20, 50, 100} {
		balance, err = ledger.Deposit(t.Context(), f.buyer, f.buyer.AccountID, coin)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(185), balance)
}

func TestLedger_ConcurrentDepositsOnOneAccount(t *testing.T) {
	t.Parallel()

	const deposits = 1000

	f := newFixture(t)
	ledger := NewLedger(f.accounts, nil, logging.NopLogger)

	var wg sync.WaitGroup
	for range deposits {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := ledger.Deposit(t.Context(), f.buyer, f.buyer.AccountID, 5)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(5*deposits), f.balance(t))
}

func TestLedger_ConcurrentDepositsAndResetsLoseNothing(t *testing.T) {
	t.Parallel()

	const (
		deposits = 500
		resets   = 50
	)

	f := newFixture(t)
	ledger := NewLedger(f.accounts, nil, logging.NopLogger)

	var cleared atomic.Int64
	var wg sync.WaitGroup

	for range deposits {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := ledger.Deposit(t.Context(), f.buyer, f.buyer.AccountID, 5)
			assert.NoError(t, err)
		}()
	}
	for range resets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			amount, err := ledger.Reset(t.Context(), f.buyer, f.buyer.AccountID)
			assert.NoError(t, err)
			cleared.Add(amount)
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(5*deposits), cleared.Load()+f.balance(t))
}

func TestLedger_Reset(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ledger := NewLedger(f.accounts, nil, logging.NopLogger)
	f.setBalance(t, 35)

	cleared, err := ledger.Reset(t.Context(), f.buyer, f.buyer.AccountID)
	require.NoError(t, err)
	assert.Equal(t, int64(35), cleared)
	assert.Zero(t, f.balance(t))

	cleared, err = ledger.Reset(t.Context(), f.buyer, f.buyer.AccountID)
	require.NoError(t, err)
	assert.Zero(t, cleared)

	_, err = ledger.Reset(t.Context(), f.seller, f.seller.AccountID)
	assert.ErrorIs(t, err, &domain.RoleViolationError{})
}

func TestLedger_PublishesEvents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	publisher := storemocks.NewMockEventPublisher(ctrl)

	f := newFixture(t)
	ledger := NewLedger(f.accounts, publisher, logging.NopLogger)

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, event domain.LedgerEvent) error {
			assert.Equal(t, domain.EventDeposit, event.Kind)
			assert.Equal(t, int64(50), event.Amount)
			assert.Equal(t, int64(50), event.Balance)
			assert.False(t, event.OccurredAt.IsZero())
			return nil
		})

	_, err := ledger.Deposit(t.Context(), f.buyer, f.buyer.AccountID, 50)
	require.NoError(t, err)

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError)

	cleared, err := ledger.Reset(t.Context(), f.buyer, f.buyer.AccountID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), cleared)
}
