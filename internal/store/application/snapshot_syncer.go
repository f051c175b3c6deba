package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
)

const finalFlushTimeout = 10 * time.Second

// SnapshotSyncer collects committed entity snapshots and writes them to the
// state repository in batches. Only the latest snapshot per entity is kept.
type SnapshotSyncer struct {
	repository domain.StateRepository
	interval   time.Duration
	logger     logging.Logger

	mu              sync.Mutex
	accounts        map[string]domain.Account
	products        map[string]domain.Product
	removedAccounts map[string]struct{}
	removedProducts map[string]struct{}
}

func NewSnapshotSyncer(repository domain.StateRepository, interval time.Duration, logger logging.Logger) *SnapshotSyncer {
	s := &SnapshotSyncer{
		repository: repository,
		interval:   interval,
		logger:     logger,
	}
	s.reset()

	return s
}

func (s *SnapshotSyncer) AccountChanged(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = account
	delete(s.removedAccounts, account.ID)
}

func (s *SnapshotSyncer) AccountRemoved(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, accountID)
	s.removedAccounts[accountID] = struct{}{}
}

func (s *SnapshotSyncer) ProductChanged(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = product
	delete(s.removedProducts, product.ID)
}

func (s *SnapshotSyncer) ProductRemoved(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, productID)
	s.removedProducts[productID] = struct{}{}
}

// Run flushes on every tick until ctx is done, then flushes once more.
func (s *SnapshotSyncer) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
			defer cancel()

			if err := s.Flush(flushCtx); err != nil {
				return fmt.Errorf("failed to flush state on shutdown: %w", err)
			}

			s.logger.Info("state flushed on shutdown")
			return nil
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("failed to flush state", "error", err.Error())
			}
		}
	}
}

// Flush writes everything collected so far. On failure the batch goes back to
// the queue, except for entities that changed again in the meantime.
func (s *SnapshotSyncer) Flush(ctx context.Context) error {
	batch := s.take()
	if batch.Empty() {
		return nil
	}

	if err := s.repository.ApplySnapshot(ctx, batch); err != nil {
		s.requeue(batch)
		return err
	}

	return nil
}

func (s *SnapshotSyncer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts) + len(s.products) + len(s.removedAccounts) + len(s.removedProducts)
}

func (s *SnapshotSyncer) take() domain.SnapshotBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := domain.SnapshotBatch{
		Accounts:        make([]domain.Account, 0, len(s.accounts)),
		Products:        make([]domain.Product, 0, len(s.products)),
		RemovedAccounts: make([]string, 0, len(s.removedAccounts)),
		RemovedProducts: make([]string, 0, len(s.removedProducts)),
	}

	for _, account := range s.accounts {
		batch.Accounts = append(batch.Accounts, account)
	}
	for _, product := range s.products {
		batch.Products = append(batch.Products, product)
	}
	for accountID := range s.removedAccounts {
		batch.RemovedAccounts = append(batch.RemovedAccounts, accountID)
	}
	for productID := range s.removedProducts {
		batch.RemovedProducts = append(batch.RemovedProducts, productID)
	}

	s.reset()

	return batch
}

func (s *SnapshotSyncer) requeue(batch domain.SnapshotBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range batch.Accounts {
		if !s.accountTouched(account.ID) {
			s.accounts[account.ID] = account
		}
	}
	for _, accountID := range batch.RemovedAccounts {
		if !s.accountTouched(accountID) {
			s.removedAccounts[accountID] = struct{}{}
		}
	}
	for _, product := range batch.Products {
		if !s.productTouched(product.ID) {
			s.products[product.ID] = product
		}
	}
	for _, productID := range batch.RemovedProducts {
		if !s.productTouched(productID) {
			s.removedProducts[productID] = struct{}{}
		}
	}
}

func (s *SnapshotSyncer) accountTouched(accountID string) bool {
	_, changed := s.accounts[accountID]
	_, removed := s.removedAccounts[accountID]
	return changed || removed
}

func (s *SnapshotSyncer) productTouched(productID string) bool {
	_, changed := s.products[productID]
	_, removed := s.removedProducts[productID]
	return changed || removed
}

func (s *SnapshotSyncer) reset() {
	s.accounts = make(map[string]domain.Account)
	s.products = make(map[string]domain.Product)
	s.removedAccounts = make(map[string]struct{})
	s.removedProducts = make(map[string]struct{})
}
