package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	baserepo "github.com/angelmondragon/vendora-backend/internal/repo"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateOrder persists a new order. Order creation itself belongs to the
// checkout collaborator; this exists for seeding and integrations.
func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderForUpdate takes a row lock so the status transition and its
// settlement side effects serialize against concurrent writers.
func (r *repository) FindOrderForUpdate(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) ListStoreOrders(ctx context.Context, storeIDs []uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if len(storeIDs) == 0 {
		return &OrderList{Orders: []OrderSummary{}}, nil
	}
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id IN ?", storeIDs)
	return r.list(q, params, filters)
}

func (r *repository) ListBuyerOrders(ctx context.Context, userID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)
	return r.list(q, params, filters)
}

func (r *repository) list(q *gorm.DB, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.PayoutStatus != nil {
		q = q.Where("payout_status = ?", *filters.PayoutStatus)
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	q = baserepo.CursorWindow(q, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Order
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	page, more := pagination.TrimPage(rows, params.Limit)
	list := &OrderList{Orders: make([]OrderSummary, 0, len(page))}
	for _, row := range page {
		list.Orders = append(list.Orders, OrderSummary{
			ID:              row.ID,
			StoreID:         row.StoreID,
			Status:          row.Status,
			TotalAmount:     row.TotalAmount,
			AdminCommission: row.AdminCommission,
			SellerAmount:    row.SellerAmount,
			PayoutStatus:    row.PayoutStatus,
			TrackingNumber:  row.TrackingNumber,
			CreatedAt:       row.CreatedAt,
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
