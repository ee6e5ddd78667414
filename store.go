package auth

import "context"

// AccountStore is the persistence boundary for accounts. Implementations
// own the Account records and must enforce username/email uniqueness at
// write time; a violation surfaced by Create is mapped by SessionIssuer to
// the same Conflict as the pre-check, closing the check/insert race.
//
// Find methods return ErrAccountNotFound on a miss.
type AccountStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)

	// Create persists a new account, assigns its id and backfills the
	// registration defaults (trial status, free plan, trial end +7d).
	Create(ctx context.Context, acc *Account) (*Account, error)

	// UpdateStatus persists a reconciled subscription status.
	UpdateStatus(ctx context.Context, id int64, status SubscriptionStatus) error
}
