package earnings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

const sellerOrderTotalsQuery = `
SELECT COALESCE(SUM(CASE WHEN payout_status = 'pending' THEN seller_amount ELSE 0 END), 0) AS available_earnings,
       COALESCE(SUM(total_amount), 0) AS lifetime_gross,
       COALESCE(SUM(admin_commission), 0) AS lifetime_commission
FROM orders
WHERE store_id IN ?
  AND status IN ('paid', 'shipped', 'delivered')
`

const sellerPayoutTotalsQuery = `
SELECT COALESCE(SUM(CASE WHEN status IN ('requested', 'approved', 'processing') THEN amount ELSE 0 END), 0) AS pending_payouts,
       COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0) AS completed_payouts
FROM payouts
WHERE seller_id = ?
`

const storeBreakdownQuery = `
SELECT COALESCE(SUM(total_amount), 0) AS gross_revenue,
       COALESCE(SUM(admin_commission), 0) AS commission,
       COALESCE(SUM(seller_amount), 0) AS net_earnings,
       COUNT(*) AS order_count
FROM orders
WHERE store_id = ?
  AND status IN ('paid', 'shipped', 'delivered')
`

const adminProfitQuery = `
SELECT store_id,
       COALESCE(SUM(total_amount), 0) AS gross_revenue,
       COALESCE(SUM(admin_commission), 0) AS commission
FROM orders
WHERE status IN ('paid', 'shipped', 'delivered')
GROUP BY store_id
ORDER BY commission DESC
`

// Repository exposes the on-demand earnings aggregations. Every query reads a
// point-in-time snapshot without locking, so totals may trail concurrent
// settlements by a transaction or two.
type Repository interface {
	SellerSummary(ctx context.Context, sellerID uuid.UUID, storeIDs []uuid.UUID) (*SellerSummary, error)
	StoreBreakdown(ctx context.Context, storeID uuid.UUID) (*StoreBreakdown, error)
	AdminProfit(ctx context.Context) (*AdminProfitReport, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an earnings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SellerSummary(ctx context.Context, sellerID uuid.UUID, storeIDs []uuid.UUID) (*SellerSummary, error) {
	summary := &SellerSummary{}

	if len(storeIDs) > 0 {
		var orderRow struct {
			AvailableEarnings  decimal.Decimal
			LifetimeGross      decimal.Decimal
			LifetimeCommission decimal.Decimal
		}
		if err := r.db.WithContext(ctx).Raw(sellerOrderTotalsQuery, storeIDs).Scan(&orderRow).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate seller orders")
		}
		summary.AvailableEarnings = orderRow.AvailableEarnings
		summary.LifetimeGross = orderRow.LifetimeGross
		summary.LifetimeCommission = orderRow.LifetimeCommission
	}

	var payoutRow struct {
		PendingPayouts   decimal.Decimal
		CompletedPayouts decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(sellerPayoutTotalsQuery, sellerID).Scan(&payoutRow).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate seller payouts")
	}
	summary.PendingPayouts = payoutRow.PendingPayouts
	summary.CompletedPayouts = payoutRow.CompletedPayouts

	return summary, nil
}

func (r *repository) StoreBreakdown(ctx context.Context, storeID uuid.UUID) (*StoreBreakdown, error) {
	var row struct {
		GrossRevenue decimal.Decimal
		Commission   decimal.Decimal
		NetEarnings  decimal.Decimal
		OrderCount   int64
	}
	if err := r.db.WithContext(ctx).Raw(storeBreakdownQuery, storeID).Scan(&row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate store revenue")
	}

	return &StoreBreakdown{
		StoreID:      storeID,
		GrossRevenue: row.GrossRevenue,
		Commission:   row.Commission,
		NetEarnings:  row.NetEarnings,
		OrderCount:   row.OrderCount,
	}, nil
}

func (r *repository) AdminProfit(ctx context.Context) (*AdminProfitReport, error) {
	var rows []struct {
		StoreID      uuid.UUID
		GrossRevenue decimal.Decimal
		Commission   decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(adminProfitQuery).Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate marketplace profit")
	}

	report := &AdminProfitReport{Stores: make([]StoreProfit, 0, len(rows))}
	for _, row := range rows {
		report.Stores = append(report.Stores, StoreProfit{
			StoreID:      row.StoreID,
			GrossRevenue: row.GrossRevenue,
			Commission:   row.Commission,
		})
		report.GrossVolume = report.GrossVolume.Add(row.GrossRevenue)
		report.TotalCommission = report.TotalCommission.Add(row.Commission)
	}
	return report, nil
}
