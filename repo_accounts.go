package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// accounts is the Bun-backed AccountStore. The accounts table carries
// unique indexes on username and email, so uniqueness is ultimately
// enforced by the database, not by the pre-checks above it.
type accounts struct {
	db  bun.IDB
	now func() time.Time
}

var _ AccountStore = (*accounts)(nil)

// AccountsOption customizes the repository.
type AccountsOption func(*accounts)

// WithAccountsClock injects a custom clock (useful for tests).
func WithAccountsClock(clock func() time.Time) AccountsOption {
	return func(a *accounts) {
		if clock != nil {
			a.now = clock
		}
	}
}

// NewAccountStore returns an AccountStore backed by the given Bun handle.
func NewAccountStore(db bun.IDB, opts ...AccountsOption) AccountStore {
	repo := &accounts{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

func (a *accounts) FindByUsernameOrEmail(ctx context.Context, username, email string) (*Account, error) {
	record := &Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ? OR ?TableAlias.email = ?", username, email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, a.mapFindErr(err)
	}
	return record, nil
}

func (a *accounts) FindByUsername(ctx context.Context, username string) (*Account, error) {
	record := &Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, a.mapFindErr(err)
	}
	return record, nil
}

func (a *accounts) FindByID(ctx context.Context, id int64) (*Account, error) {
	record := &Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, a.mapFindErr(err)
	}
	return record, nil
}

func (a *accounts) Create(ctx context.Context, acc *Account) (*Account, error) {
	acc.EnsureDefaults(a.now())

	if _, err := a.db.NewInsert().Model(acc).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, wrapInternal(err, "failed to create account")
	}

	return acc, nil
}

func (a *accounts) UpdateStatus(ctx context.Context, id int64, status SubscriptionStatus) error {
	res, err := a.db.NewUpdate().
		Model((*Account)(nil)).
		Set("subscription_status = ?", status).
		Set("updated_at = ?", a.now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapInternal(err, "failed to update subscription status")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (a *accounts) mapFindErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	return wrapInternal(err, "account lookup failed")
}
