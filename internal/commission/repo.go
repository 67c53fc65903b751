package commission

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db/models"
)

// Repository defines persistence operations for the commission settings row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context) (*models.CommissionSettings, error)
	Update(ctx context.Context, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a commission settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context) (*models.CommissionSettings, error) {
	var settings models.CommissionSettings
	err := r.db.WithContext(ctx).
		Where("id = ?", models.CommissionSettingsID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repository) Update(ctx context.Context, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.CommissionSettings{}).
		Where("id = ?", models.CommissionSettingsID).
		Updates(updates).Error
}

// RateReader is the narrow dependency settlement callers need: the live
// commission rate at the moment an order is stamped.
type RateReader interface {
	CurrentRate(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error)
}
