package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Lexv0lk/vending-machine/internal/auth/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/jwt"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/google/uuid"
)

const credentialsMismatchMsg = "username or password is incorrect"

type Authenticator struct {
	accounts    domain.AccountDirectory
	products    domain.ProductPurger
	sessions    *SessionRegistry
	hasher      domain.PasswordHasher
	limiter     domain.AttemptLimiter
	tokenIssuer jwt.TokenIssuer
	tokenParser jwt.TokenParser
	secretKey   []byte
	logger      logging.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthenticator(
	accounts domain.AccountDirectory,
	products domain.ProductPurger,
	sessions *SessionRegistry,
	hasher domain.PasswordHasher,
	limiter domain.AttemptLimiter,
	tokenIssuer jwt.TokenIssuer,
	tokenParser jwt.TokenParser,
	secretKey string,
	logger logging.Logger,
) *Authenticator {
	return &Authenticator{
		accounts:    accounts,
		products:    products,
		sessions:    sessions,
		hasher:      hasher,
		limiter:     limiter,
		tokenIssuer: tokenIssuer,
		tokenParser: tokenParser,
		secretKey:   []byte(secretKey),
		logger:      logger,
	}
}

func (a *Authenticator) Register(ctx context.Context, username, password, role string) (store.Account, error) {
	if password == "" {
		return store.Account{}, &store.InvalidArgumentsError{Msg: "password must not be empty"}
	}

	parsedRole, err := store.ParseRole(role)
	if err != nil {
		return store.Account{}, err
	}

	hashedPassword, err := a.hasher.HashPassword(password)
	if err != nil {
		return store.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := a.accounts.Create(username, hashedPassword, parsedRole)
	if err != nil {
		return store.Account{}, err
	}

	a.logger.Info("account registered", "account_id", account.ID, "role", string(account.Role))
	return account, nil
}

// Login checks the credentials and opens a new session. A duplicate session is
// reported through the result warning, never as an error.
func (a *Authenticator) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	allowed, retryAfter, err := a.limiter.Register(ctx, username)
	if err != nil {
		a.logger.Warn("login attempt limiter unavailable", "error", err.Error())
	} else if !allowed {
		return domain.LoginResult{}, &domain.TooManyAttemptsError{
			Msg:        fmt.Sprintf("too many login attempts, retry in %s", retryAfter),
			Username:   username,
			RetryAfter: retryAfter,
		}
	}

	account, err := a.accounts.FindByUsername(username)
	if err != nil {
		if errors.Is(err, &store.NotFoundError{}) {
			a.verifyDecoy(password)
			return domain.LoginResult{}, &domain.CredentialsMismatchError{Msg: credentialsMismatchMsg, Username: username}
		}

		return domain.LoginResult{}, err
	}

	valid, err := a.hasher.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return domain.LoginResult{}, &domain.CredentialsMismatchError{Msg: credentialsMismatchMsg, Username: username}
	}

	if err := a.limiter.Reset(ctx, username); err != nil {
		a.logger.Warn("failed to reset login attempts", "error", err.Error())
	}

	session, warning := a.sessions.Login(account.ID)

	token, err := a.tokenIssuer.IssueToken(a.secretKey, session.ID, account.ID, string(account.Role), session.ExpiresAt)
	if err != nil {
		_ = a.sessions.Revoke(session.ID)
		return domain.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return domain.LoginResult{
		Token:   token,
		Session: session,
		Warning: warning,
	}, nil
}

// Resolve turns a bearer token into the caller identity. The role always comes
// from the account record, not from the token.
func (a *Authenticator) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := a.tokenParser.ParseToken(a.secretKey, token)
	if err != nil {
		return domain.Identity{}, &domain.SessionInvalidError{Msg: "token is invalid or expired"}
	}

	session, err := a.sessions.Validate(claims.SessionID())
	if err != nil {
		return domain.Identity{}, err
	}

	if session.AccountID != claims.AccountID {
		return domain.Identity{}, sessionInvalid(session.ID)
	}

	account, err := a.accounts.Get(session.AccountID)
	if err != nil {
		if errors.Is(err, &store.NotFoundError{}) {
			return domain.Identity{}, sessionInvalid(session.ID)
		}

		return domain.Identity{}, err
	}

	return domain.Identity{
		Actor:     account.Actor(),
		SessionID: session.ID,
	}, nil
}

func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.Revoke(sessionID)
}

func (a *Authenticator) LogoutAll(ctx context.Context, accountID string) int {
	revoked := a.sessions.RevokeAll(accountID)
	a.logger.Info("all sessions revoked", "account_id", accountID, "count", revoked)

	return revoked
}

func (a *Authenticator) Account(ctx context.Context, accountID string) (store.Account, int, error) {
	account, err := a.accounts.Get(accountID)
	if err != nil {
		return store.Account{}, 0, err
	}

	return account, a.sessions.ActiveSessions(accountID), nil
}

func (a *Authenticator) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return &store.InvalidArgumentsError{Msg: "password must not be empty"}
	}

	account, err := a.accounts.Get(accountID)
	if err != nil {
		return err
	}

	valid, err := a.hasher.VerifyPassword(currentPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return &domain.CredentialsMismatchError{Msg: "current password is incorrect", Username: account.Username}
	}

	hashedPassword, err := a.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.accounts.UpdateCredential(accountID, hashedPassword)
}

// DeleteAccount revokes every session first, then drops the account, then the seller's products.
func (a *Authenticator) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := a.accounts.Get(accountID)
	if err != nil {
		return err
	}

	a.sessions.RevokeAll(accountID)

	// Product creation holds the owner's account lock, so no product can be
	// attached to the seller once the account is gone.
	if _, err := a.accounts.Delete(accountID); err != nil {
		return err
	}

	if account.Role == store.RoleSeller {
		removed := a.products.DeleteByOwner(accountID)
		a.logger.Info("seller products removed", "account_id", accountID, "count", removed)
	}

	a.logger.Info("account deleted", "account_id", accountID)
	return nil
}

// verifyDecoy spends the same hashing work on an unknown username as on a wrong password.
func (a *Authenticator) verifyDecoy(password string) {
	a.decoyOnce.Do(func() {
		hash, err := a.hasher.HashPassword(uuid.NewString())
		if err != nil {
			a.logger.Warn("failed to prepare decoy password hash", "error", err.Error())
			return
		}

		a.decoyHash = hash
	})

	if a.decoyHash == "" {
		return
	}

	_, _ = a.hasher.VerifyPassword(password, a.decoyHash)
}
