package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{ID: 1, Email: "a@b.com", Name: "a"}, false},
		{"zero id", User{ID: 0, Email: "a@b.com", Name: "a"}, true},
		{"negative id", User{ID: -4, Email: "a@b.com", Name: "a"}, true},
		{"empty email", User{ID: 1, Name: "a"}, true},
		{"empty name", User{ID: 1, Email: "a@b.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSubscriptionSnapshot_HasActivePlan(t *testing.T) {
	require.True(t, SubscriptionSnapshot{Plan: "basic"}.HasActivePlan())
	require.False(t, SubscriptionSnapshot{Plan: ""}.HasActivePlan())
	require.False(t, SubscriptionSnapshot{Plan: "none"}.HasActivePlan())
}

func TestSubscriptionSnapshot_CanStore(t *testing.T) {
	s := SubscriptionSnapshot{StorageLimitBytes: 100_000_000, StorageUsageBytes: 95_000_000}
	require.True(t, s.CanStore(5_000_000))
	require.False(t, s.CanStore(6_000_000))
}

func TestPlanByName(t *testing.T) {
	p, ok := PlanByName("premium")
	require.True(t, ok)
	require.Equal(t, "500", p.AmountXAF)

	p, ok = PlanByName("Basic")
	require.True(t, ok)
	require.Equal(t, "basic", p.ID)

	_, ok = PlanByName("platinum")
	require.False(t, ok)
}

func TestParsePaymentStatus(t *testing.T) {
	require.Equal(t, PaymentSuccessful, ParsePaymentStatus("SUCCESSFUL"))
	require.Equal(t, PaymentSuccessful, ParsePaymentStatus("Successful"))
	require.Equal(t, PaymentFailed, ParsePaymentStatus("failed"))
	require.Equal(t, PaymentPending, ParsePaymentStatus("PENDING"))
	require.Equal(t, PaymentPending, ParsePaymentStatus("PROCESSING"))
	require.Equal(t, PaymentPending, ParsePaymentStatus(""))
}

func TestPaymentStatus_Terminal(t *testing.T) {
	require.True(t, PaymentSuccessful.Terminal())
	require.True(t, PaymentFailed.Terminal())
	require.False(t, PaymentPending.Terminal())
}
