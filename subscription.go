package auth

import "time"

// ReconcileSubscription computes the effective subscription status of an
// account at the given instant. It returns the effective status and whether
// it differs from the stored one, in which case the caller is expected to
// persist the new value (write-back-on-read). The account is never mutated.
//
// The function is pure and total: the same (status, trial end, subscription
// end, now) always yields the same result.
func ReconcileSubscription(acc *Account, now time.Time) (SubscriptionStatus, bool) {
	if acc == nil {
		return "", false
	}

	switch acc.Status {
	case StatusTrial:
		if acc.TrialEndsAt != nil && now.After(*acc.TrialEndsAt) {
			return StatusExpired, true
		}
	case StatusActive:
		if acc.SubscriptionEnd != nil && now.After(*acc.SubscriptionEnd) {
			return StatusExpired, true
		}
	}

	return acc.Status, false
}
