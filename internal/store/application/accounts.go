package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/google/uuid"
)

type accountCell struct {
	mu      sync.Mutex
	account domain.Account
	removed bool
}

// AccountBook owns every account record. Each account has its own lock;
// the book lock only guards the maps and is never held while waiting for a cell.
type AccountBook struct {
	mu         sync.RWMutex
	cells      map[string]*accountCell
	byUsername map[string]string

	tracker domain.ChangeTracker
}

func NewAccountBook(tracker domain.ChangeTracker) *AccountBook {
	if tracker == nil {
		tracker = domain.NoopTracker
	}

	return &AccountBook{
		cells:      make(map[string]*accountCell),
		byUsername: make(map[string]string),
		tracker:    tracker,
	}
}

// Load replaces the book content with persisted accounts. Meant for startup only.
func (ab *AccountBook) Load(accounts []domain.Account) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	ab.cells = make(map[string]*accountCell, len(accounts))
	ab.byUsername = make(map[string]string, len(accounts))

	for _, account := range accounts {
		ab.cells[account.ID] = &accountCell{account: account}
		ab.byUsername[account.Username] = account.ID
	}
}

func (ab *AccountBook) Create(username, passwordHash string, role domain.Role) (domain.Account, error) {
	if username == "" {
		return domain.Account{}, &domain.InvalidArgumentsError{Msg: "username must not be empty"}
	}

	if _, err := domain.ParseRole(string(role)); err != nil {
		return domain.Account{}, err
	}

	ab.mu.Lock()
	defer ab.mu.Unlock()

	if _, taken := ab.byUsername[username]; taken {
		return domain.Account{}, &domain.AlreadyExistsError{
			Msg: fmt.Sprintf("username %s is already taken", username),
			Key: username,
		}
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Role:         role,
		PasswordHash: passwordHash,
	}

	ab.cells[account.ID] = &accountCell{account: account}
	ab.byUsername[username] = account.ID
	ab.tracker.AccountChanged(account)

	return account, nil
}

func (ab *AccountBook) Get(accountID string) (domain.Account, error) {
	cell, err := ab.cell(accountID)
	if err != nil {
		return domain.Account{}, err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return domain.Account{}, accountNotFound(accountID)
	}

	return cell.account, nil
}

func (ab *AccountBook) FindByUsername(username string) (domain.Account, error) {
	ab.mu.RLock()
	accountID, found := ab.byUsername[username]
	ab.mu.RUnlock()

	if !found {
		return domain.Account{}, &domain.NotFoundError{
			Msg: fmt.Sprintf("user %s not found", username),
			ID:  username,
		}
	}

	return ab.Get(accountID)
}

func (ab *AccountBook) List() []domain.Account {
	ab.mu.RLock()
	cells := make([]*accountCell, 0, len(ab.cells))
	for _, cell := range ab.cells {
		cells = append(cells, cell)
	}
	ab.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(cells))
	for _, cell := range cells {
		cell.mu.Lock()
		if !cell.removed {
			accounts = append(accounts, cell.account)
		}
		cell.mu.Unlock()
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})

	return accounts
}

func (ab *AccountBook) UpdateCredential(accountID, passwordHash string) error {
	return ab.withAccount(accountID, func(account *domain.Account) error {
		account.PasswordHash = passwordHash
		return nil
	})
}

func (ab *AccountBook) Delete(accountID string) (domain.Account, error) {
	cell, err := ab.cell(accountID)
	if err != nil {
		return domain.Account{}, err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return domain.Account{}, accountNotFound(accountID)
	}
	cell.removed = true

	ab.mu.Lock()
	delete(ab.cells, accountID)
	delete(ab.byUsername, cell.account.Username)
	ab.mu.Unlock()

	ab.tracker.AccountRemoved(accountID)

	return cell.account, nil
}

// withAccount runs fn on a copy of the account under its cell lock.
// The copy is stored and reported to the tracker only when fn succeeds.
func (ab *AccountBook) withAccount(accountID string, fn func(account *domain.Account) error) error {
	cell, err := ab.cell(accountID)
	if err != nil {
		return err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return accountNotFound(accountID)
	}

	updated := cell.account
	if err := fn(&updated); err != nil {
		return err
	}

	cell.account = updated
	ab.tracker.AccountChanged(updated)

	return nil
}

// hold runs fn under the account lock without changing the account.
func (ab *AccountBook) hold(accountID string, fn func(account domain.Account) error) error {
	cell, err := ab.cell(accountID)
	if err != nil {
		return err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return accountNotFound(accountID)
	}

	return fn(cell.account)
}

func (ab *AccountBook) cell(accountID string) (*accountCell, error) {
	ab.mu.RLock()
	defer ab.mu.RUnlock()

	cell, found := ab.cells[accountID]
	if !found {
		return nil, accountNotFound(accountID)
	}

	return cell, nil
}

func accountNotFound(accountID string) error {
	return &domain.NotFoundError{
		Msg: fmt.Sprintf("account %s not found", accountID),
		ID:  accountID,
	}
}
