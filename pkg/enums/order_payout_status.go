package enums

import "fmt"

// OrderPayoutStatus tracks how far an order has moved through payout claiming.
type OrderPayoutStatus string

const (
	OrderPayoutStatusPending   OrderPayoutStatus = "pending"
	OrderPayoutStatusRequested OrderPayoutStatus = "requested"
	OrderPayoutStatusCompleted OrderPayoutStatus = "completed"
)

var validOrderPayoutStatuses = []OrderPayoutStatus{
	OrderPayoutStatusPending,
	OrderPayoutStatusRequested,
	OrderPayoutStatusCompleted,
}

// String implements fmt.Stringer.
func (o OrderPayoutStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderPayoutStatus.
func (o OrderPayoutStatus) IsValid() bool {
	for _, candidate := range validOrderPayoutStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderPayoutStatus converts raw input into an OrderPayoutStatus.
func ParseOrderPayoutStatus(value string) (OrderPayoutStatus, error) {
	for _, candidate := range validOrderPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order payout status %q", value)
}
