package payouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	baserepo "github.com/angelmondragon/vendora-backend/internal/repo"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payouts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreatePayout(ctx context.Context, payout *models.Payout) (*models.Payout, error) {
	if err := r.db.WithContext(ctx).Create(payout).Error; err != nil {
		return nil, err
	}
	return payout, nil
}

func (r *repository) FindPayout(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.WithContext(ctx).
		Where("id = ?", payoutID).
		First(&payout).Error
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// FindPayoutForUpdate locks the payout row so two concurrent process calls
// serialize and the loser observes the terminal status.
func (r *repository) FindPayoutForUpdate(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", payoutID).
		First(&payout).Error
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *repository) UpdatePayout(ctx context.Context, payoutID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("id = ?", payoutID).
		Updates(updates).Error
}

// FindPayoutCandidates selects and row-locks the orders eligible for a new
// payout: realized money, not yet claimed, scoped to the given stores and
// optionally to an explicit order-id subset.
func (r *repository) FindPayoutCandidates(ctx context.Context, storeIDs []uuid.UUID, orderIDs []uuid.UUID) ([]models.Order, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id IN ?", storeIDs).
		Where("status IN ?", enums.PayableOrderStatuses).
		Where("payout_status = ?", enums.OrderPayoutStatusPending)
	if len(orderIDs) > 0 {
		q = q.Where("id IN ?", orderIDs)
	}

	var orders []models.Order
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkOrdersRequested claims the orders for a payout. The payout_status guard
// makes the claim safe to race: a concurrent request that already claimed a
// row leaves fewer rows affected and the caller rolls back.
func (r *repository) MarkOrdersRequested(ctx context.Context, orderIDs []uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET payout_status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id IN ? AND payout_status = ?
	`, enums.OrderPayoutStatusRequested, orderIDs, enums.OrderPayoutStatusPending)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// MarkOrdersCompleted finalizes the claims of an approved payout.
func (r *repository) MarkOrdersCompleted(ctx context.Context, orderIDs []uuid.UUID, payoutID uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET payout_status = ?,
			payout_id = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id IN ? AND payout_status = ?
	`, enums.OrderPayoutStatusCompleted, payoutID, orderIDs, enums.OrderPayoutStatusRequested)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ReleaseOrderClaims returns rejected orders to the payable pool.
func (r *repository) ReleaseOrderClaims(ctx context.Context, orderIDs []uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET payout_status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id IN ? AND payout_status = ?
	`, enums.OrderPayoutStatusPending, orderIDs, enums.OrderPayoutStatusRequested)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ListPayouts(ctx context.Context, params pagination.Params, filters PayoutFilters) (*PayoutList, error) {
	q := r.db.WithContext(ctx).Model(&models.Payout{})
	if filters.SellerID != nil {
		q = q.Where("seller_id = ?", *filters.SellerID)
	}
	if filters.StoreID != nil {
		q = q.Where("store_id = ?", *filters.StoreID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	q = baserepo.CursorWindow(q, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Payout
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	page, more := pagination.TrimPage(rows, params.Limit)
	list := &PayoutList{Payouts: make([]PayoutSummary, 0, len(page))}
	for _, row := range page {
		list.Payouts = append(list.Payouts, PayoutSummary{
			ID:               row.ID,
			SellerID:         row.SellerID,
			StoreID:          row.StoreID,
			GrossAmount:      row.GrossAmount,
			CommissionAmount: row.CommissionAmount,
			Amount:           row.Amount,
			Status:           row.Status,
			OrderCount:       len(row.OrderIDs),
			ProcessedAt:      row.ProcessedAt,
			CreatedAt:        row.CreatedAt,
		})
	}
	if more {
		last := page[len(page)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}
