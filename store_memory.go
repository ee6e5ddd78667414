package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local AccountStore for environments where the
// relational backend is unavailable, and for tests. It provides the same
// uniqueness and lookup guarantees as the Bun repository. Records do not
// survive a restart and ids are never reused within a process.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts []*Account
	nextID   int64
	now      func() time.Time
}

var _ AccountStore = (*MemoryStore)(nil)

// MemoryStoreOption customizes the store.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryStoreClock injects a custom clock (useful for tests).
func WithMemoryStoreClock(clock func() time.Time) MemoryStoreOption {
	return func(m *MemoryStore) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

func (m *MemoryStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, acc := range m.accounts {
		if acc.Username == username || acc.Email == email {
			return cloneAccount(acc), nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *MemoryStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, acc := range m.accounts {
		if acc.Username == username {
			return cloneAccount(acc), nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *MemoryStore) FindByID(ctx context.Context, id int64) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, acc := range m.accounts {
		if acc.ID == id {
			return cloneAccount(acc), nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *MemoryStore) Create(ctx context.Context, acc *Account) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Uniqueness is checked under the same lock that assigns the id, so
	// two concurrent registrations cannot both pass.
	for _, existing := range m.accounts {
		if existing.Username == acc.Username || existing.Email == acc.Email {
			return nil, ErrConflict
		}
	}

	record := cloneAccount(acc)
	record.EnsureDefaults(m.now())
	record.ID = m.nextID
	m.nextID++

	m.accounts = append(m.accounts, record)
	return cloneAccount(record), nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, id int64, status SubscriptionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.Status = status
			updated := m.now()
			acc.UpdatedAt = &updated
			return nil
		}
	}
	return ErrAccountNotFound
}

// Len reports how many accounts the store holds.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

func cloneAccount(acc *Account) *Account {
	if acc == nil {
		return nil
	}
	dup := *acc
	dup.SubscriptionStart = cloneTime(acc.SubscriptionStart)
	dup.SubscriptionEnd = cloneTime(acc.SubscriptionEnd)
	dup.TrialEndsAt = cloneTime(acc.TrialEndsAt)
	dup.CreatedAt = cloneTime(acc.CreatedAt)
	dup.UpdatedAt = cloneTime(acc.UpdatedAt)
	return &dup
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	dup := *t
	return &dup
}
