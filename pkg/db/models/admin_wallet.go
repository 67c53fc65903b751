package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminWalletID is the primary key of the singleton wallet row.
const AdminWalletID = 1

// AdminWallet is the platform-wide money ledger. All mutations are additive
// single-statement updates so concurrent settlements never lose increments.
type AdminWallet struct {
	ID                    int             `gorm:"column:id;primaryKey"`
	TotalBalance          decimal.Decimal `gorm:"column:total_balance;type:numeric(14,2);not null;default:0"`
	AvailableBalance      decimal.Decimal `gorm:"column:available_balance;type:numeric(14,2);not null;default:0"`
	PendingPayouts        decimal.Decimal `gorm:"column:pending_payouts;type:numeric(14,2);not null;default:0"`
	TotalCommissionEarned decimal.Decimal `gorm:"column:total_commission_earned;type:numeric(14,2);not null;default:0"`
	TotalPayoutsProcessed decimal.Decimal `gorm:"column:total_payouts_processed;type:numeric(14,2);not null;default:0"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
