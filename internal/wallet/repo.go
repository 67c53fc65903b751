package wallet

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

// Repository defines persistence operations for the admin wallet row. All
// mutations are single-statement additive updates, never read-modify-write, so
// concurrent settlements cannot lose increments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context) (*models.AdminWallet, error)
	CreditSettlement(ctx context.Context, total, commission decimal.Decimal) error
	ReservePayout(ctx context.Context, amount decimal.Decimal) error
	CompletePayout(ctx context.Context, amount decimal.Decimal) error
	ReleasePayout(ctx context.Context, amount decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a wallet repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context) (*models.AdminWallet, error) {
	var wallet models.AdminWallet
	err := r.db.WithContext(ctx).
		Where("id = ?", models.AdminWalletID).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CreditSettlement realizes an order's money on first payment confirmation.
func (r *repository) CreditSettlement(ctx context.Context, total, commission decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE admin_wallets
		SET total_balance = total_balance + ?,
			available_balance = available_balance + ?,
			total_commission_earned = total_commission_earned + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, total, total, commission, models.AdminWalletID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "credit settlement")
	}
	return nil
}

// ReservePayout tracks a newly requested payout as pending disbursement.
func (r *repository) ReservePayout(ctx context.Context, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE admin_wallets
		SET pending_payouts = pending_payouts + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, amount, models.AdminWalletID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve payout")
	}
	return nil
}

// CompletePayout moves a disbursed amount out of the available balance.
func (r *repository) CompletePayout(ctx context.Context, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE admin_wallets
		SET available_balance = available_balance - ?,
			total_payouts_processed = total_payouts_processed + ?,
			pending_payouts = pending_payouts - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, amount, amount, amount, models.AdminWalletID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "complete payout")
	}
	return nil
}

// ReleasePayout drops the pending reservation of a rejected or failed payout.
func (r *repository) ReleasePayout(ctx context.Context, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE admin_wallets
		SET pending_payouts = pending_payouts - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, amount, models.AdminWalletID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release payout")
	}
	return nil
}
