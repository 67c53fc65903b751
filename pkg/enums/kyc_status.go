package enums

import "fmt"

// KYCStatus captures the seller identity/bank verification workflow.
type KYCStatus string

const (
	KYCStatusPendingVerification KYCStatus = "pending_verification"
	KYCStatusVerified            KYCStatus = "verified"
	KYCStatusRejected            KYCStatus = "rejected"
	KYCStatusSuspended           KYCStatus = "suspended"
)

var validKYCStatuses = []KYCStatus{
	KYCStatusPendingVerification,
	KYCStatusVerified,
	KYCStatusRejected,
	KYCStatusSuspended,
}

// String implements fmt.Stringer.
func (k KYCStatus) String() string {
	return string(k)
}

// IsValid reports whether the value is a known KYCStatus.
func (k KYCStatus) IsValid() bool {
	for _, candidate := range validKYCStatuses {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseKYCStatus converts raw input into a KYCStatus.
func ParseKYCStatus(value string) (KYCStatus, error) {
	for _, candidate := range validKYCStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid kyc status %q", value)
}
