package enums

import "fmt"

// PayoutStatus tracks the lifecycle of a seller payout request.
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusRequested  PayoutStatus = "requested"
	PayoutStatusApproved   PayoutStatus = "approved"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusRejected   PayoutStatus = "rejected"
	PayoutStatusFailed     PayoutStatus = "failed"
)

var validPayoutStatuses = []PayoutStatus{
	PayoutStatusPending,
	PayoutStatusRequested,
	PayoutStatusApproved,
	PayoutStatusProcessing,
	PayoutStatusCompleted,
	PayoutStatusRejected,
	PayoutStatusFailed,
}

// OpenPayoutStatuses are the non-terminal statuses whose order claims are live.
var OpenPayoutStatuses = []PayoutStatus{
	PayoutStatusRequested,
	PayoutStatusApproved,
	PayoutStatusProcessing,
}

// String implements fmt.Stringer.
func (p PayoutStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PayoutStatus.
func (p PayoutStatus) IsValid() bool {
	for _, candidate := range validPayoutStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the payout can no longer be processed.
func (p PayoutStatus) IsTerminal() bool {
	switch p {
	case PayoutStatusCompleted, PayoutStatusRejected, PayoutStatusFailed:
		return true
	default:
		return false
	}
}

// ParsePayoutStatus converts raw input into a PayoutStatus.
func ParsePayoutStatus(value string) (PayoutStatus, error) {
	for _, candidate := range validPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payout status %q", value)
}
