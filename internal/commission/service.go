package commission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

// Service exposes reads and the super-admin update of the commission rate.
type Service interface {
	Settings(ctx context.Context) (*models.CommissionSettings, error)
	UpdateRate(ctx context.Context, input UpdateRateInput) (*models.CommissionSettings, error)
	CurrentRate(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error)
}

// UpdateRateInput captures the super-admin rate change request.
type UpdateRateInput struct {
	Rate       decimal.Decimal
	UpdatedBy  uuid.UUID
	UpdateNote *string
}

type service struct {
	repo Repository
}

// NewService builds a commission service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Settings(ctx context.Context) (*models.CommissionSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "commission settings not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission settings")
	}
	return settings, nil
}

func (s *service) UpdateRate(ctx context.Context, input UpdateRateInput) (*models.CommissionSettings, error) {
	if input.UpdatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Rate.IsNegative() || input.Rate.GreaterThan(one) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 1")
	}

	updates := map[string]any{
		"commission_rate": input.Rate,
		"updated_by":      input.UpdatedBy,
		"update_note":     input.UpdateNote,
	}
	if err := s.repo.Update(ctx, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update commission rate")
	}
	return s.Settings(ctx)
}

// CurrentRate reads the live rate, optionally inside the caller's transaction.
// Settlement stamping reads fresh every time, never a snapshot taken at order
// creation.
func (s *service) CurrentRate(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error) {
	repo := s.repo.WithTx(tx)
	settings, err := repo.Find(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "commission settings not found")
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission rate")
	}
	return settings.CommissionRate, nil
}
