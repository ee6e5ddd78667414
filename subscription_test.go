package auth_test

import (
	"testing"
	"time"

	auth "github.com/qfqa/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestReconcileSubscription(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name        string
		account     *auth.Account
		wantStatus  auth.SubscriptionStatus
		wantChanged bool
	}{
		{
			name:        "trial still running",
			account:     &auth.Account{Status: auth.StatusTrial, TrialEndsAt: &future},
			wantStatus:  auth.StatusTrial,
			wantChanged: false,
		},
		{
			name:        "trial lapsed",
			account:     &auth.Account{Status: auth.StatusTrial, TrialEndsAt: &past},
			wantStatus:  auth.StatusExpired,
			wantChanged: true,
		},
		{
			name:        "trial without end date",
			account:     &auth.Account{Status: auth.StatusTrial},
			wantStatus:  auth.StatusTrial,
			wantChanged: false,
		},
		{
			name:        "active within window",
			account:     &auth.Account{Status: auth.StatusActive, SubscriptionEnd: &future},
			wantStatus:  auth.StatusActive,
			wantChanged: false,
		},
		{
			name:        "active lapsed",
			account:     &auth.Account{Status: auth.StatusActive, SubscriptionEnd: &past},
			wantStatus:  auth.StatusExpired,
			wantChanged: true,
		},
		{
			name:        "active without end date never lapses",
			account:     &auth.Account{Status: auth.StatusActive},
			wantStatus:  auth.StatusActive,
			wantChanged: false,
		},
		{
			name:        "inactive untouched",
			account:     &auth.Account{Status: auth.StatusInactive, TrialEndsAt: &past},
			wantStatus:  auth.StatusInactive,
			wantChanged: false,
		},
		{
			name:        "already expired is idempotent",
			account:     &auth.Account{Status: auth.StatusExpired, TrialEndsAt: &past},
			wantStatus:  auth.StatusExpired,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := tt.account.Status

			status, changed := auth.ReconcileSubscription(tt.account, now)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantChanged, changed)
			// Reconciliation returns a value; the record is untouched.
			assert.Equal(t, stored, tt.account.Status)
		})
	}
}

func TestReconcileSubscriptionIsPure(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	acc := &auth.Account{Status: auth.StatusTrial, TrialEndsAt: &past}

	first, firstChanged := auth.ReconcileSubscription(acc, now)
	second, secondChanged := auth.ReconcileSubscription(acc, now)

	assert.Equal(t, first, second)
	assert.Equal(t, firstChanged, secondChanged)
}
