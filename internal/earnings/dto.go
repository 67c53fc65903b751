package earnings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerSummary aggregates a seller's settled money across every store they
// own. AvailableEarnings counts seller amounts on settled orders that no
// payout has claimed yet; the payout buckets split past requests by whether
// an admin has completed them.
type SellerSummary struct {
	AvailableEarnings  decimal.Decimal `json:"availableEarnings"`
	PendingPayouts     decimal.Decimal `json:"pendingPayouts"`
	CompletedPayouts   decimal.Decimal `json:"completedPayouts"`
	LifetimeGross      decimal.Decimal `json:"lifetimeGross"`
	LifetimeCommission decimal.Decimal `json:"lifetimeCommission"`
}

// StoreBreakdown is the revenue/commission view of a single store.
type StoreBreakdown struct {
	StoreID      uuid.UUID       `json:"storeId"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	Commission   decimal.Decimal `json:"commission"`
	NetEarnings  decimal.Decimal `json:"netEarnings"`
	OrderCount   int64           `json:"orderCount"`
}

// StoreProfit is one row of the admin profit report.
type StoreProfit struct {
	StoreID      uuid.UUID       `json:"storeId"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	Commission   decimal.Decimal `json:"commission"`
}

// AdminProfitReport totals marketplace commission and breaks it down per store.
type AdminProfitReport struct {
	TotalCommission decimal.Decimal `json:"totalCommission"`
	GrossVolume     decimal.Decimal `json:"grossVolume"`
	Stores          []StoreProfit   `json:"stores"`
}
