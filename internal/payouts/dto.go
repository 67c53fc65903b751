package payouts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// RequestPayoutInput captures a seller's payout aggregation request.
type RequestPayoutInput struct {
	SellerID     uuid.UUID
	StoreID      *uuid.UUID
	OrderIDs     []uuid.UUID
	RequestNotes *string
}

// ProcessDecision represents the action an admin can take on a payout.
type ProcessDecision string

const (
	ProcessDecisionApprove ProcessDecision = "approved"
	ProcessDecisionReject  ProcessDecision = "rejected"
)

// ProcessPayoutInput captures the admin settlement action.
type ProcessPayoutInput struct {
	PayoutID      uuid.UUID
	Decision      ProcessDecision
	AdminID       uuid.UUID
	AdminNotes    *string
	TransactionID *string
}

// GetPayoutInput identifies a payout and the caller asking for it.
type GetPayoutInput struct {
	PayoutID    uuid.UUID
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// PayoutFilters describe the inputs supported by the payout list.
type PayoutFilters struct {
	SellerID *uuid.UUID
	StoreID  *uuid.UUID
	Status   *enums.PayoutStatus
}

// PayoutSummary exposes the fields returned in payout lists.
type PayoutSummary struct {
	ID               uuid.UUID          `json:"id"`
	SellerID         uuid.UUID          `json:"seller_id"`
	StoreID          *uuid.UUID         `json:"store_id,omitempty"`
	GrossAmount      decimal.Decimal    `json:"gross_amount"`
	CommissionAmount decimal.Decimal    `json:"commission_amount"`
	Amount           decimal.Decimal    `json:"amount"`
	Status           enums.PayoutStatus `json:"status"`
	OrderCount       int                `json:"order_count"`
	ProcessedAt      *time.Time         `json:"processed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// PayoutList wraps the paginated payouts plus the next page cursor.
type PayoutList struct {
	Payouts    []PayoutSummary `json:"payouts"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
