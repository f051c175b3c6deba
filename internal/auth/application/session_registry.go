package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/auth/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/google/uuid"
)

type accountSessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	dropped  bool
}

// SessionRegistry is the only authority on whether a session is alive.
// Login, Revoke and RevokeAll on one account are serialized by that account's lock.
type SessionRegistry struct {
	mu       sync.RWMutex
	accounts map[string]*accountSessions
	owners   map[string]string

	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

type RegistryOption func(r *SessionRegistry)

func WithClock(now func() time.Time) RegistryOption {
	return func(r *SessionRegistry) {
		r.now = now
	}
}

func NewSessionRegistry(ttl time.Duration, logger logging.Logger, opts ...RegistryOption) *SessionRegistry {
	r := &SessionRegistry{
		accounts: make(map[string]*accountSessions),
		owners:   make(map[string]string),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Login always opens a new session. The warning is set when other live sessions already exist.
func (r *SessionRegistry) Login(accountID string) (domain.Session, *domain.DuplicateSessionWarning) {
	for {
		entry := r.entry(accountID, true)

		entry.mu.Lock()
		if entry.dropped {
			entry.mu.Unlock()
			continue
		}

		now := r.now()
		active := countActive(entry, now)

		session := &domain.Session{
			ID:        uuid.NewString(),
			AccountID: accountID,
			CreatedAt: now,
			ExpiresAt: now.Add(r.ttl),
		}
		entry.sessions[session.ID] = session

		r.mu.Lock()
		r.owners[session.ID] = accountID
		r.mu.Unlock()

		entry.mu.Unlock()

		if active == 0 {
			return *session, nil
		}

		return *session, &domain.DuplicateSessionWarning{
			Msg:            domain.DuplicateSessionMessage,
			ActiveSessions: active,
		}
	}
}

func (r *SessionRegistry) Validate(sessionID string) (domain.Session, error) {
	entry, session, unlock := r.lockSession(sessionID)
	if entry == nil {
		return domain.Session{}, sessionInvalid(sessionID)
	}
	defer unlock()

	if !session.ActiveAt(r.now()) {
		return domain.Session{}, sessionInvalid(sessionID)
	}

	return *session, nil
}

// Revoke ends one session. Revoking an already revoked session is a no-op.
func (r *SessionRegistry) Revoke(sessionID string) error {
	entry, session, unlock := r.lockSession(sessionID)
	if entry == nil {
		return sessionInvalid(sessionID)
	}
	defer unlock()

	session.Revoked = true
	return nil
}

// RevokeAll ends every session the account has at the moment of the call and returns how many were live.
func (r *SessionRegistry) RevokeAll(accountID string) int {
	entry := r.entry(accountID, false)
	if entry == nil {
		return 0
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	revoked := 0
	for _, session := range entry.sessions {
		if session.ActiveAt(now) {
			revoked++
		}
		session.Revoked = true
	}

	return revoked
}

func (r *SessionRegistry) ActiveSessions(accountID string) int {
	entry := r.entry(accountID, false)
	if entry == nil {
		return 0
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return countActive(entry, r.now())
}

// Sweep forgets revoked and expired sessions and returns how many were dropped.
func (r *SessionRegistry) Sweep() int {
	r.mu.RLock()
	entries := make(map[string]*accountSessions, len(r.accounts))
	for accountID, entry := range r.accounts {
		entries[accountID] = entry
	}
	r.mu.RUnlock()

	now := r.now()
	swept := 0

	for accountID, entry := range entries {
		entry.mu.Lock()

		dead := make([]string, 0)
		for sessionID, session := range entry.sessions {
			if !session.ActiveAt(now) {
				dead = append(dead, sessionID)
			}
		}

		r.mu.Lock()
		for _, sessionID := range dead {
			delete(entry.sessions, sessionID)
			delete(r.owners, sessionID)
		}
		if len(entry.sessions) == 0 {
			entry.dropped = true
			delete(r.accounts, accountID)
		}
		r.mu.Unlock()

		entry.mu.Unlock()
		swept += len(dead)
	}

	return swept
}

// Run sweeps on every tick until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if swept := r.Sweep(); swept > 0 {
				r.logger.Info("dropped dead sessions", "count", swept)
			}
		}
	}
}

func (r *SessionRegistry) entry(accountID string, create bool) *accountSessions {
	r.mu.RLock()
	entry, found := r.accounts[accountID]
	r.mu.RUnlock()

	if found || !create {
		return entry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found = r.accounts[accountID]
	if !found {
		entry = &accountSessions{sessions: make(map[string]*domain.Session)}
		r.accounts[accountID] = entry
	}

	return entry
}

// lockSession returns the session with its account lock held, or a nil entry when it is unknown.
func (r *SessionRegistry) lockSession(sessionID string) (*accountSessions, *domain.Session, func()) {
	r.mu.RLock()
	accountID, found := r.owners[sessionID]
	r.mu.RUnlock()

	if !found {
		return nil, nil, nil
	}

	entry := r.entry(accountID, false)
	if entry == nil {
		return nil, nil, nil
	}

	entry.mu.Lock()

	session, found := entry.sessions[sessionID]
	if !found || entry.dropped {
		entry.mu.Unlock()
		return nil, nil, nil
	}

	return entry, session, entry.mu.Unlock
}

func countActive(entry *accountSessions, now time.Time) int {
	active := 0
	for _, session := range entry.sessions {
		if session.ActiveAt(now) {
			active++
		}
	}

	return active
}

func sessionInvalid(sessionID string) error {
	return &domain.SessionInvalidError{
		Msg:       fmt.Sprintf("session %s is not active", sessionID),
		SessionID: sessionID,
	}
}
