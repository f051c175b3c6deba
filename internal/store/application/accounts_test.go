package application

import (
	"testing"

	storemocks "github.com/Lexv0lk/vending-machine/gen/mocks/store"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountBook_Create(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		username    string
		role        domain.Role
		expectedErr error
	}

	tests := []testCase{
		{name: "new buyer", username: "alice", role: domain.RoleBuyer},
		{name: "new seller", username: "bob", role: domain.RoleSeller},
		{name: "taken username", username: "buyer", role: domain.RoleBuyer, expectedErr: &domain.AlreadyExistsError{}},
		{name: "empty username", username: "", role: domain.RoleBuyer, expectedErr: &domain.InvalidArgumentsError{}},
		{name: "unknown role", username: "carol", role: domain.Role("admin"), expectedErr: &domain.InvalidArgumentsError{}},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)

			account, err := f.accounts.Create(tt.username, "hash", tt.role)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, account.ID)
			assert.Zero(t, account.Balance)

			found, err := f.accounts.FindByUsername(tt.username)
			require.NoError(t, err)
			assert.Equal(t, account, found)
		})
	}
}

func TestAccountBook_Delete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	deleted, err := f.accounts.Delete(f.buyer.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "buyer", deleted.Username)

	_, err = f.accounts.Get(f.buyer.AccountID)
	assert.ErrorIs(t, err, &domain.NotFoundError{})

	_, err = f.accounts.FindByUsername("buyer")
	assert.ErrorIs(t, err, &domain.NotFoundError{})

	_, err = f.accounts.Delete(f.buyer.AccountID)
	assert.ErrorIs(t, err, &domain.NotFoundError{})

	_, err = f.accounts.Create("buyer", "hash", domain.RoleBuyer)
	assert.NoError(t, err)
}

func TestAccountBook_UpdateCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.NoError(t, f.accounts.UpdateCredential(f.seller.AccountID, "new-hash"))

	account, err := f.accounts.Get(f.seller.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", account.PasswordHash)

	assert.ErrorIs(t, f.accounts.UpdateCredential("missing", "x"), &domain.NotFoundError{})
}

func TestAccountBook_TracksChanges(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tracker := storemocks.NewMockChangeTracker(ctrl)
	book := NewAccountBook(tracker)

	var created domain.Account
	tracker.EXPECT().AccountChanged(gomock.Any()).Do(func(account domain.Account) {
		created = account
	})

	account, err := book.Create("dave", "hash", domain.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, account, created)

	tracker.EXPECT().AccountRemoved(account.ID)

	_, err = book.Delete(account.ID)
	require.NoError(t, err)
}

func TestAccountBook_Load(t *testing.T) {
	t.Parallel()

	book := NewAccountBook(nil)
	book.Load([]domain.Account{
		{ID: "a1", Username: "zed", Role: domain.RoleBuyer, Balance: 35},
		{ID: "a2", Username: "amy", Role: domain.RoleSeller},
	})

	accounts := book.List()
	require.Len(t, accounts, 2)
	assert.Equal(t, "amy", accounts[0].Username)

	found, err := book.FindByUsername("zed")
	require.NoError(t, err)
	assert.Equal(t, int64(35), found.Balance)
}
