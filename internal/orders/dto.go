package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// OrderFilters describe the inputs supported by the order lists.
type OrderFilters struct {
	Status       *enums.OrderStatus
	PayoutStatus *enums.OrderPayoutStatus
	DateFrom     *time.Time
	DateTo       *time.Time
}

// OrderSummary exposes the fields returned in order lists.
type OrderSummary struct {
	ID              uuid.UUID               `json:"id"`
	StoreID         uuid.UUID               `json:"store_id"`
	Status          enums.OrderStatus       `json:"status"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	AdminCommission decimal.Decimal         `json:"admin_commission"`
	SellerAmount    decimal.Decimal         `json:"seller_amount"`
	PayoutStatus    enums.OrderPayoutStatus `json:"payout_status,omitempty"`
	TrackingNumber  *string                 `json:"tracking_number,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
