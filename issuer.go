package auth

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// AuthResult is what both Register and Authenticate hand back: a signed
// session token and the public account view, never the credential hash.
type AuthResult struct {
	Token   string        `json:"token"`
	Account PublicAccount `json:"account"`
}

// SessionIssuer composes the credential hasher, the token service and the
// subscription clock over an AccountStore. Each call is an independent,
// stateless unit of work; no lock is held across the bcrypt comparison or
// any store access.
type SessionIssuer struct {
	store  AccountStore
	tokens TokenService
	logger Logger
	now    func() time.Time
}

// IssuerOption customizes SessionIssuer construction.
type IssuerOption func(*SessionIssuer)

// WithIssuerLogger overrides the default logger.
func WithIssuerLogger(logger Logger) IssuerOption {
	return func(i *SessionIssuer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithIssuerClock injects a custom clock (useful for tests).
func WithIssuerClock(clock func() time.Time) IssuerOption {
	return func(i *SessionIssuer) {
		if clock != nil {
			i.now = clock
		}
	}
}

// NewSessionIssuer returns a SessionIssuer over the given store and token
// service.
func NewSessionIssuer(store AccountStore, tokens TokenService, opts ...IssuerOption) *SessionIssuer {
	issuer := &SessionIssuer{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(issuer)
		}
	}
	return issuer
}

// Register creates a new account in trial status on the free plan and
// issues its first session token. A duplicate username or email fails with
// Conflict, whether it is caught by the pre-check or by the store's
// uniqueness constraint at insert time.
func (i *SessionIssuer) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	_, err := i.store.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err == nil {
		return nil, ErrConflict
	}
	if !goerrors.IsNotFound(err) {
		i.logger.Error("register uniqueness pre-check failed: %v", err)
		return nil, wrapInternal(err, "failed to check account uniqueness")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		i.logger.Error("register password hashing failed: %v", err)
		return nil, wrapInternal(err, "failed to hash password")
	}

	acc, err := i.store.Create(ctx, &Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Neurotype:    input.Neurotype,
	})
	if err != nil {
		if IsConflict(err) {
			return nil, ErrConflict
		}
		i.logger.Error("register account creation failed: %v", err)
		return nil, wrapInternal(err, "failed to create account")
	}

	token, err := i.tokens.Issue(acc.ID, acc.Username, acc.Plan)
	if err != nil {
		i.logger.Error("register token issuance failed: %v", err)
		return nil, wrapInternal(err, "failed to issue session token")
	}

	return &AuthResult{
		Token:   token,
		Account: acc.Public(acc.Status),
	}, nil
}

// Authenticate verifies a credential, reconciles the account's subscription
// status against the current time (persisting the new value when it
// changed), and issues a session token carrying the reconciled plan. An
// unknown username and a wrong password fail with the identical error.
func (i *SessionIssuer) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	input := LoginInput{Username: username, Password: password}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	acc, err := i.store.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			// Burn a comparison so a missing account costs the same
			// as a wrong password.
			_ = ComparePasswordAndHash(password, decoyHash())
			return nil, ErrInvalidCredentials
		}
		i.logger.Error("authenticate account lookup failed: %v", err)
		return nil, wrapInternal(err, "failed to look up account")
	}

	if err := ComparePasswordAndHash(password, acc.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		i.logger.Error("authenticate password comparison failed: %v", err)
		return nil, wrapInternal(err, "failed to verify credential")
	}

	effective, changed := ReconcileSubscription(acc, i.now())
	if changed {
		if err := i.store.UpdateStatus(ctx, acc.ID, effective); err != nil {
			i.logger.Error("authenticate status write-back failed: %v", err)
			return nil, wrapInternal(err, "failed to persist subscription status")
		}
	}

	token, err := i.tokens.Issue(acc.ID, acc.Username, acc.Plan)
	if err != nil {
		i.logger.Error("authenticate token issuance failed: %v", err)
		return nil, wrapInternal(err, "failed to issue session token")
	}

	return &AuthResult{
		Token:   token,
		Account: acc.Public(effective),
	}, nil
}

// CheckUsername reports whether the username is still available.
func (i *SessionIssuer) CheckUsername(ctx context.Context, username string) (bool, error) {
	if len(username) < 3 {
		return false, wrapValidation(goerrors.New("username must be at least 3 characters", goerrors.CategoryValidation))
	}

	_, err := i.store.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if goerrors.IsNotFound(err) {
		return true, nil
	}
	return false, wrapInternal(err, "failed to check username availability")
}

// Profile loads an account by id, reconciles its subscription status
// (writing the new value back when it changed) and returns the public view.
func (i *SessionIssuer) Profile(ctx context.Context, accountID int64) (*PublicAccount, error) {
	acc, err := i.store.FindByID(ctx, accountID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInternal(err, "failed to load account")
	}

	effective, changed := ReconcileSubscription(acc, i.now())
	if changed {
		if err := i.store.UpdateStatus(ctx, acc.ID, effective); err != nil {
			return nil, wrapInternal(err, "failed to persist subscription status")
		}
	}

	view := acc.Public(effective)
	return &view, nil
}

var decoyHash = sync.OnceValue(RandomPasswordHash)
