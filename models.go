package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// Neurotype is the account's neurotype classification
type Neurotype = string

const (
	// NeurotypeADHD marks an ADHD profile
	NeurotypeADHD Neurotype = "ADHD"
	// NeurotypeAutistic marks an autistic profile
	NeurotypeAutistic Neurotype = "Autistic"
	// NeurotypeBoth marks a combined profile
	NeurotypeBoth Neurotype = "Both"
)

// Neurotypes lists the accepted classifications, in display order.
var Neurotypes = []Neurotype{NeurotypeADHD, NeurotypeAutistic, NeurotypeBoth}

// SubscriptionStatus is the lifecycle state of an account's subscription
type SubscriptionStatus = string

const (
	// StatusTrial is the state of every freshly registered account
	StatusTrial SubscriptionStatus = "trial"
	// StatusActive is a paying subscription in its billing window
	StatusActive SubscriptionStatus = "active"
	// StatusInactive is a deliberately paused subscription
	StatusInactive SubscriptionStatus = "inactive"
	// StatusExpired is a lapsed trial or lapsed subscription
	StatusExpired SubscriptionStatus = "expired"
)

// SubscriptionPlan is the account's plan tier
type SubscriptionPlan = string

const (
	// PlanFree is the default plan assigned at registration
	PlanFree SubscriptionPlan = "free"
	// PlanBasic is the entry paid tier
	PlanBasic SubscriptionPlan = "basic"
	// PlanPremium is the full paid tier
	PlanPremium SubscriptionPlan = "premium"
)

// TrialPeriod is how long a fresh account stays in trial.
const TrialPeriod = 7 * 24 * time.Hour

// Account is the identity record. The stored SubscriptionStatus is a cache
// of the last reconciled value, not a source of truth; any read that feeds
// authorization must go through ReconcileSubscription first.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`

	ID                int64              `bun:"id,pk,autoincrement" json:"id"`
	Username          string             `bun:"username,notnull,unique" json:"username"`
	Email             string             `bun:"email,notnull,unique" json:"email"`
	PasswordHash      string             `bun:"password_hash,notnull" json:"-"`
	Neurotype         Neurotype          `bun:"neurotype,notnull" json:"neurotype"`
	Status            SubscriptionStatus `bun:"subscription_status,notnull,default:'trial'" json:"subscription_status"`
	Plan              SubscriptionPlan   `bun:"subscription_plan,notnull,default:'free'" json:"subscription_plan"`
	SubscriptionStart *time.Time         `bun:"subscription_start,nullzero" json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time         `bun:"subscription_end,nullzero" json:"subscription_end,omitempty"`
	TrialEndsAt       *time.Time         `bun:"trial_end_date,nullzero" json:"trial_end_date,omitempty"`
	CreatedAt         *time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureDefaults backfills the registration defaults on a new record:
// trial status, free plan, trial end seven days out.
func (a *Account) EnsureDefaults(now time.Time) {
	if a.Status == "" {
		a.Status = StatusTrial
	}
	if a.Plan == "" {
		a.Plan = PlanFree
	}
	if a.TrialEndsAt == nil {
		end := now.Add(TrialPeriod)
		a.TrialEndsAt = &end
	}
	if a.CreatedAt == nil {
		created := now
		a.CreatedAt = &created
	}
	if a.UpdatedAt == nil {
		updated := now
		a.UpdatedAt = &updated
	}
}

// PublicAccount is the client-facing view of an Account. It never carries
// the credential hash.
type PublicAccount struct {
	ID                int64              `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	Neurotype         Neurotype          `json:"neurotype"`
	Status            SubscriptionStatus `json:"subscription_status"`
	Plan              SubscriptionPlan   `json:"subscription_plan"`
	SubscriptionStart *time.Time         `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time         `json:"subscription_end,omitempty"`
	TrialEndsAt       *time.Time         `json:"trial_end_date,omitempty"`
	CreatedAt         *time.Time         `json:"created_at,omitempty"`
}

// Public builds the client view, overriding the stored status with the
// reconciled one.
func (a *Account) Public(effective SubscriptionStatus) PublicAccount {
	if effective == "" {
		effective = a.Status
	}
	return PublicAccount{
		ID:                a.ID,
		Username:          a.Username,
		Email:             a.Email,
		Neurotype:         a.Neurotype,
		Status:            effective,
		Plan:              a.Plan,
		SubscriptionStart: a.SubscriptionStart,
		SubscriptionEnd:   a.SubscriptionEnd,
		TrialEndsAt:       a.TrialEndsAt,
		CreatedAt:         a.CreatedAt,
	}
}

// ValidNeurotype reports whether nt is one of the accepted classifications.
func ValidNeurotype(nt Neurotype) bool {
	switch nt {
	case NeurotypeADHD, NeurotypeAutistic, NeurotypeBoth:
		return true
	}
	return false
}
