package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// Order is the per-store order produced at checkout. Status moves only through
// the order state machine; payout fields move only through the payout pipeline.
type Order struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID               `gorm:"column:store_id;type:uuid;not null;index"`
	UserID          uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus       `gorm:"column:status;type:order_status;not null;default:'pending'"`
	TotalAmount     decimal.Decimal         `gorm:"column:total_amount;type:numeric(12,2);not null"`
	AdminCommission decimal.Decimal         `gorm:"column:admin_commission;type:numeric(12,2);not null;default:0"`
	SellerAmount    decimal.Decimal         `gorm:"column:seller_amount;type:numeric(12,2);not null;default:0"`
	PayoutStatus    enums.OrderPayoutStatus `gorm:"column:payout_status;type:order_payout_status"`
	PayoutID        *uuid.UUID              `gorm:"column:payout_id;type:uuid"`
	TrackingNumber  *string                 `gorm:"column:tracking_number"`
	Notes           *string                 `gorm:"column:notes"`
	PaidAt          *time.Time              `gorm:"column:paid_at"`
	DeliveredAt     *time.Time              `gorm:"column:delivered_at"`
	CancelledAt     *time.Time              `gorm:"column:cancelled_at"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// Settled reports whether the commission split has been stamped. PayoutStatus
// is empty until the first entry into a payable status, so it doubles as the
// stamp-once marker.
func (o Order) Settled() bool {
	return o.PayoutStatus != ""
}
