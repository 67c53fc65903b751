package payouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

// Repository defines persistence operations for payouts and order claims.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePayout(ctx context.Context, payout *models.Payout) (*models.Payout, error)
	FindPayout(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error)
	FindPayoutForUpdate(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error)
	UpdatePayout(ctx context.Context, payoutID uuid.UUID, updates map[string]any) error
	FindPayoutCandidates(ctx context.Context, storeIDs []uuid.UUID, orderIDs []uuid.UUID) ([]models.Order, error)
	MarkOrdersRequested(ctx context.Context, orderIDs []uuid.UUID) (int64, error)
	MarkOrdersCompleted(ctx context.Context, orderIDs []uuid.UUID, payoutID uuid.UUID) (int64, error)
	ReleaseOrderClaims(ctx context.Context, orderIDs []uuid.UUID) (int64, error)
	ListPayouts(ctx context.Context, params pagination.Params, filters PayoutFilters) (*PayoutList, error)
}
