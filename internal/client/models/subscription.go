package models

import "strings"

// SubscriptionSnapshot is a read-only projection of the user's plan and
// storage accounting, fetched fresh whenever quota data is needed. It is
// advisory for client-side checks only; the server stays authoritative.
type SubscriptionSnapshot struct {
	Plan              string `json:"plan"`
	StorageLimitBytes int64  `json:"storage_limit_bytes"`
	StorageUsageBytes int64  `json:"storage_usage_bytes"`
}

// HasActivePlan reports whether an active plan exists. An absent plan and
// the sentinel "none" both mean uploads are blocked outright, which is
// distinct from an active plan with an exhausted quota.
func (s SubscriptionSnapshot) HasActivePlan() bool {
	return s.Plan != "" && s.Plan != "none"
}

// CanStore reports whether an additional sizeBytes fits in the quota.
func (s SubscriptionSnapshot) CanStore(sizeBytes int64) bool {
	return s.StorageUsageBytes+sizeBytes <= s.StorageLimitBytes
}

// Plan describes one purchasable subscription tier.
type Plan struct {
	ID           string
	Name         string
	AmountXAF    string
	StorageBytes int64
}

// KnownPlans lists the tiers offered by the service, with the amounts the
// payment gateway expects.
func KnownPlans() []Plan {
	return []Plan{
		{ID: "basic", Name: "Basic", AmountXAF: "100", StorageBytes: 1 << 30},
		{ID: "premium", Name: "Premium", AmountXAF: "500", StorageBytes: 10 << 30},
		{ID: "enterprise", Name: "Enterprise", AmountXAF: "1000", StorageBytes: 100 << 30},
	}
}

// PlanByName finds a known plan by id or display name, case-insensitively.
func PlanByName(name string) (Plan, bool) {
	for _, p := range KnownPlans() {
		if strings.EqualFold(name, p.ID) || strings.EqualFold(name, p.Name) {
			return p, true
		}
	}
	return Plan{}, false
}
