package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// Store is a seller-operated storefront. Verification status is flipped only
// by the admin verification endpoint.
type Store struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID   uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	Name       string            `gorm:"column:name;not null"`
	Slug       string            `gorm:"column:slug;not null;uniqueIndex"`
	Status     enums.StoreStatus `gorm:"column:status;type:store_status;not null;default:'pending_review'"`
	VerifiedBy *uuid.UUID        `gorm:"column:verified_by;type:uuid"`
	VerifiedAt *time.Time        `gorm:"column:verified_at"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
