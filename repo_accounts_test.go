package auth_test

import (
	"context"
	"testing"
	"time"

	auth "github.com/qfqa/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := auth.OpenDatabase(":memory:")
	require.NoError(t, err)
	// A pooled :memory: connection per conn would mean one database per
	// connection; pin the pool to a single one.
	db.DB.SetMaxOpenConns(1)

	require.NoError(t, auth.BootstrapSchema(context.Background(), db))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAccountStoreCreate(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := auth.NewAccountStore(db, auth.WithAccountsClock(func() time.Time { return now }))
	ctx := context.Background()

	acc, err := store.Create(ctx, &auth.Account{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Neurotype:    auth.NeurotypeADHD,
	})
	require.NoError(t, err)

	assert.NotZero(t, acc.ID)
	assert.Equal(t, auth.StatusTrial, acc.Status)
	assert.Equal(t, auth.PlanFree, acc.Plan)
	require.NotNil(t, acc.TrialEndsAt)
	assert.Equal(t, now.Add(auth.TrialPeriod), acc.TrialEndsAt.UTC())

	second, err := store.Create(ctx, &auth.Account{
		Username: "bob", Email: "bob@example.com", PasswordHash: "hash",
		Neurotype: auth.NeurotypeAutistic,
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, acc.ID)
}

func TestAccountStoreUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	store := auth.NewAccountStore(db)
	ctx := context.Background()

	_, err := store.Create(ctx, &auth.Account{
		Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
		Neurotype: auth.NeurotypeADHD,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		account *auth.Account
	}{
		{
			name: "duplicate username",
			account: &auth.Account{
				Username: "alice", Email: "other@example.com",
				PasswordHash: "hash", Neurotype: auth.NeurotypeADHD,
			},
		},
		{
			name: "duplicate email",
			account: &auth.Account{
				Username: "other", Email: "alice@example.com",
				PasswordHash: "hash", Neurotype: auth.NeurotypeADHD,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The database constraint, not a pre-check, raises this.
			_, err := store.Create(ctx, tt.account)
			assert.ErrorIs(t, err, auth.ErrConflict)
		})
	}
}

func TestAccountStoreLookups(t *testing.T) {
	db := newTestDB(t)
	store := auth.NewAccountStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, &auth.Account{
		Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
		Neurotype: auth.NeurotypeADHD,
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		acc, err := store.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, acc.ID)
		assert.Equal(t, "hash", acc.PasswordHash)
	})

	t.Run("by username or email", func(t *testing.T) {
		acc, err := store.FindByUsernameOrEmail(ctx, "nobody", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, acc.ID)
	})

	t.Run("by id", func(t *testing.T) {
		acc, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", acc.Username)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := store.FindByUsername(ctx, "ghost")
		assert.Error(t, err)
	})
}

func TestAccountStoreUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	store := auth.NewAccountStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, &auth.Account{
		Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
		Neurotype: auth.NeurotypeADHD,
	})
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(ctx, created.ID, auth.StatusExpired))

	acc, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.StatusExpired, acc.Status)

	assert.Error(t, store.UpdateStatus(ctx, 99999, auth.StatusActive))
}

func TestBootstrapSchemaIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, auth.BootstrapSchema(context.Background(), db))
}
