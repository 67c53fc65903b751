package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionSettingsID is the primary key of the singleton settings row.
const CommissionSettingsID = 1

// CommissionSettings holds the marketplace commission rate as a fraction in
// [0,1]. The rate is read fresh at settlement time, never snapshotted onto
// orders at creation.
type CommissionSettings struct {
	ID             int             `gorm:"column:id;primaryKey"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:numeric(6,4);not null"`
	UpdatedBy      *uuid.UUID      `gorm:"column:updated_by;type:uuid"`
	UpdateNote     *string         `gorm:"column:update_note"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
