package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of a session token.
const TokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies compact signed session tokens. Both
// operations are stateless aside from the process-wide signing key and are
// safe for unbounded concurrent use.
type TokenService interface {
	Issue(accountID int64, username string, plan SubscriptionPlan) (string, error)
	Verify(raw string) (*SessionClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

var _ TokenService = (*TokenServiceImpl)(nil)

// TokenOption customizes TokenService construction.
type TokenOption func(*TokenServiceImpl)

// WithTokenTTL overrides the default seven day validity window.
func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(ts *TokenServiceImpl) {
		if ttl > 0 {
			ts.ttl = ttl
		}
	}
}

// WithTokenIssuer sets the iss claim on issued tokens.
func WithTokenIssuer(issuer string) TokenOption {
	return func(ts *TokenServiceImpl) {
		ts.issuer = issuer
	}
}

// WithTokenClock injects a custom clock (useful for tests).
func WithTokenClock(clock func() time.Time) TokenOption {
	return func(ts *TokenServiceImpl) {
		if clock != nil {
			ts.now = clock
		}
	}
}

// WithTokenLogger overrides the default logger.
func WithTokenLogger(logger Logger) TokenOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, opts ...TokenOption) TokenService {
	ts := &TokenServiceImpl{
		signingKey: signingKey,
		ttl:        TokenTTL,
		logger:     defLogger{},
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}
	return ts
}

// Issue signs a token carrying the account id, username and plan. The token
// expires ttl after issuance; there is no server-side record of it.
func (ts *TokenServiceImpl) Issue(accountID int64, username string, plan SubscriptionPlan) (string, error) {
	now := ts.now()

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		UID:      accountID,
		Username: username,
		Plan:     plan,
	}

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", wrapInternal(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify parses and validates a token string, returning its claims. Every
// failure mode, malformed input, unexpected algorithm, bad signature, or
// expiry, surfaces as the same ErrInvalidToken. The parser recomputes the
// HMAC over the first two segments and compares in constant time before any
// claim is trusted.
func (ts *TokenServiceImpl) Verify(raw string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token verify: unexpected signing method %v", t.Header["alg"])
			return nil, ErrInvalidToken
		}
		return ts.signingKey, nil
	}, jwt.WithTimeFunc(ts.now))

	if err != nil {
		ts.logger.Debug("token verification failed: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token verify could not decode claims")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
