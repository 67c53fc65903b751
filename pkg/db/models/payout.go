package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/vendora-backend/pkg/db/types"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// Payout aggregates a seller's eligible orders into a single disbursement
// request. Amount is always GrossAmount minus CommissionAmount and equals the
// sum of seller_amount over exactly the orders in OrderIDs.
type Payout struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID         uuid.UUID          `gorm:"column:seller_id;type:uuid;not null;index"`
	StoreID          *uuid.UUID         `gorm:"column:store_id;type:uuid"`
	GrossAmount      decimal.Decimal    `gorm:"column:gross_amount;type:numeric(12,2);not null"`
	CommissionAmount decimal.Decimal    `gorm:"column:commission_amount;type:numeric(12,2);not null"`
	Amount           decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	Status           enums.PayoutStatus `gorm:"column:status;type:payout_status;not null;default:'requested'"`
	OrderIDs         dbtypes.UUIDArray  `gorm:"column:order_ids;type:uuid[]"`
	RequestNotes     *string            `gorm:"column:request_notes"`
	AdminNotes       *string            `gorm:"column:admin_notes"`
	TransactionID    *string            `gorm:"column:transaction_id"`
	ProcessedBy      *uuid.UUID         `gorm:"column:processed_by;type:uuid"`
	ProcessedAt      *time.Time         `gorm:"column:processed_at"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
