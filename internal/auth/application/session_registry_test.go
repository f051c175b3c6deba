package application

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/auth/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestSessionRegistry_DoubleLoginThenRevokeAll(t *testing.T) {
	t.Parallel()

	registry := NewSessionRegistry(time.Hour, logging.NopLogger)

	first, warning := registry.Login("a1")
	assert.Nil(t, warning)

	second, warning := registry.Login("a1")
	require.NotNil(t, warning)
	assert.Equal(t, domain.DuplicateSessionMessage, warning.Msg)
	assert.Equal(t, 1, warning.ActiveSessions)
	assert.NotEqual(t, first.ID, second.ID)

	_, err := registry.Validate(first.ID)
	assert.NoError(t, err)
	_, err = registry.Validate(second.ID)
	assert.NoError(t, err)

	assert.Equal(t, 2, registry.RevokeAll("a1"))

	_, err = registry.Validate(first.ID)
	assert.ErrorIs(t, err, &domain.SessionInvalidError{})
	_, err = registry.Validate(second.ID)
	assert.ErrorIs(t, err, &domain.SessionInvalidError{})

	third, warning := registry.Login("a1")
	assert.Nil(t, warning)
	_, err = registry.Validate(third.ID)
	assert.NoError(t, err)
}

func TestSessionRegistry_Revoke(t *testing.T) {
	t.Parallel()

	registry := NewSessionRegistry(time.Hour, logging.NopLogger)

	first, _ := registry.Login("a1")
	second, _ := registry.Login("a1")
	other, _ := registry.Login("a2")

	require.NoError(t, registry.Revoke(first.ID))
	require.NoError(t, registry.Revoke(first.ID))

	_, err := registry.Validate(first.ID)
	assert.ErrorIs(t, err, &domain.SessionInvalidError{})

	_, err = registry.Validate(second.ID)
	assert.NoError(t, err)
	_, err = registry.Validate(other.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1, registry.ActiveSessions("a1"))
	assert.ErrorIs(t, registry.Revoke("unknown"), &domain.SessionInvalidError{})
	assert.Zero(t, registry.RevokeAll("nobody"))
}

func TestSessionRegistry_Expiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	registry := NewSessionRegistry(time.Minute, logging.NopLogger, WithClock(clock.Now))

	session, _ := registry.Login("a1")
	assert.Equal(t, clock.Now().Add(time.Minute), session.ExpiresAt)

	clock.Advance(59 * time.Second)
	_, err := registry.Validate(session.ID)
	assert.NoError(t, err)

	clock.Advance(time.Second)
	_, err = registry.Validate(session.ID)
	assert.ErrorIs(t, err, &domain.SessionInvalidError{})

	_, warning := registry.Login("a1")
	assert.Nil(t, warning, "expired sessions do not count as duplicates")
}

func TestSessionRegistry_Sweep(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	registry := NewSessionRegistry(time.Minute, logging.NopLogger, WithClock(clock.Now))

	expired, _ := registry.Login("a1")
	clock.Advance(2 * time.Minute)

	revoked, _ := registry.Login("a2")
	require.NoError(t, registry.Revoke(revoked.ID))

	alive, _ := registry.Login("a3")

	assert.Equal(t, 2, registry.Sweep())
	assert.Zero(t, registry.Sweep())

	assert.ErrorIs(t, registry.Revoke(expired.ID), &domain.SessionInvalidError{})
	_, err := registry.Validate(alive.ID)
	assert.NoError(t, err)

	again, warning := registry.Login("a1")
	assert.Nil(t, warning)
	_, err = registry.Validate(again.ID)
	assert.NoError(t, err)
}

func TestSessionRegistry_RevokeAllIsLinearizableWithLogin(t *testing.T) {
	t.Parallel()

	const logins = 200

	registry := NewSessionRegistry(time.Hour, logging.NopLogger)

	var revokeDone atomic.Bool
	var mu sync.Mutex
	var wg sync.WaitGroup
	startedAfter := make([]domain.Session, 0)
	all := make([]domain.Session, 0, logins)

	for range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()

			after := revokeDone.Load()
			session, _ := registry.Login("a1")

			mu.Lock()
			defer mu.Unlock()

			all = append(all, session)
			if after {
				startedAfter = append(startedAfter, session)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		registry.RevokeAll("a1")
		revokeDone.Store(true)
	}()

	wg.Wait()

	// a login that began after RevokeAll returned is never touched by it
	for _, session := range startedAfter {
		_, err := registry.Validate(session.ID)
		assert.NoError(t, err)
	}

	registry.RevokeAll("a1")
	assert.Zero(t, registry.ActiveSessions("a1"))
	for _, session := range all {
		_, err := registry.Validate(session.ID)
		assert.ErrorIs(t, err, &domain.SessionInvalidError{})
	}
}
