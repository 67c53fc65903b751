package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db/models"
)

func setupWalletTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS admin_wallets (
  id INTEGER PRIMARY KEY,
  total_balance NUMERIC NOT NULL DEFAULT 0,
  available_balance NUMERIC NOT NULL DEFAULT 0,
  pending_payouts NUMERIC NOT NULL DEFAULT 0,
  total_commission_earned NUMERIC NOT NULL DEFAULT 0,
  total_payouts_processed NUMERIC NOT NULL DEFAULT 0,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`INSERT INTO admin_wallets (id) VALUES (1)`).Error)
	return db
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestWalletLifecycleKeepsBalanceInvariant(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// two settlements land
	require.NoError(t, repo.CreditSettlement(ctx, dec("1000.00"), dec("50.00")))
	require.NoError(t, repo.CreditSettlement(ctx, dec("200.00"), dec("10.00")))

	wallet, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.True(t, wallet.TotalBalance.Equal(dec("1200.00")), "total_balance %s", wallet.TotalBalance)
	assert.True(t, wallet.AvailableBalance.Equal(dec("1200.00")), "available_balance %s", wallet.AvailableBalance)
	assert.True(t, wallet.TotalCommissionEarned.Equal(dec("60.00")), "commission %s", wallet.TotalCommissionEarned)

	// payout requested then completed
	require.NoError(t, repo.ReservePayout(ctx, dec("950.00")))
	require.NoError(t, repo.CompletePayout(ctx, dec("950.00")))

	wallet, err = repo.Find(ctx)
	require.NoError(t, err)
	assert.True(t, wallet.PendingPayouts.IsZero(), "pending_payouts %s", wallet.PendingPayouts)
	assert.True(t, wallet.TotalPayoutsProcessed.Equal(dec("950.00")), "processed %s", wallet.TotalPayoutsProcessed)

	diff := wallet.TotalBalance.Sub(wallet.TotalPayoutsProcessed)
	assert.True(t, diff.Equal(wallet.AvailableBalance),
		"total_balance - total_payouts_processed must equal available_balance, got %s vs %s",
		diff, wallet.AvailableBalance)
}

func TestReleasePayoutDropsReservation(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreditSettlement(ctx, dec("500.00"), dec("25.00")))
	require.NoError(t, repo.ReservePayout(ctx, dec("475.00")))
	require.NoError(t, repo.ReleasePayout(ctx, dec("475.00")))

	wallet, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.True(t, wallet.PendingPayouts.IsZero())
	assert.True(t, wallet.AvailableBalance.Equal(dec("500.00")), "rejection must not move available balance")
}

func TestFindMissingWalletRow(t *testing.T) {
	db := setupWalletTestDB(t)
	require.NoError(t, db.Exec(`DELETE FROM admin_wallets WHERE id = ?`, models.AdminWalletID).Error)

	repo := NewRepository(db)
	_, err := repo.Find(context.Background())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
