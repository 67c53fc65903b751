package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// SellerProfile carries the per-seller payout identity. KYCStatus gates the
// payout request endpoint.
type SellerProfile struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	KYCStatus     enums.KYCStatus `gorm:"column:kyc_status;type:kyc_status;not null;default:'pending_verification'"`
	BankReference *string         `gorm:"column:bank_reference"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
