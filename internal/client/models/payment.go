package models

import "strings"

// PaymentStatus is the settlement state of one payment intent.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentFailed     PaymentStatus = "FAILED"
)

// ParsePaymentStatus normalizes a server status string. The gateway reports
// mixed-case values; only successful/failed are terminal, every other value
// (including unknown ones) is treated as still pending.
func ParsePaymentStatus(s string) PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESSFUL":
		return PaymentSuccessful
	case "FAILED":
		return PaymentFailed
	default:
		return PaymentPending
	}
}

// Terminal reports whether the status stops polling permanently.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccessful || s == PaymentFailed
}

// PaymentIntent tracks one submitted payment through settlement.
type PaymentIntent struct {
	ReferenceID string
	Amount      string
	PhoneNumber string
	Status      PaymentStatus
}
