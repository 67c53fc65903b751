package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendora-backend/api/responses"
	"github.com/angelmondragon/vendora-backend/api/validators"
	internalcommission "github.com/angelmondragon/vendora-backend/internal/commission"
	internalearnings "github.com/angelmondragon/vendora-backend/internal/earnings"
	internalpayouts "github.com/angelmondragon/vendora-backend/internal/payouts"
	internalstores "github.com/angelmondragon/vendora-backend/internal/stores"
	internalwallet "github.com/angelmondragon/vendora-backend/internal/wallet"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
	"github.com/angelmondragon/vendora-backend/pkg/logger"
)

type processPayoutRequest struct {
	Decision      string  `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes    *string `json:"admin_notes,omitempty" validate:"omitempty,max=2000"`
	TransactionID *string `json:"transaction_id,omitempty" validate:"omitempty,max=255"`
}

// ProcessPayout applies an admin approve or reject decision to a payout.
func ProcessPayout(svc internalpayouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payoutID, err := parsePathUUID(r, "payoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req processPayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payout, err := svc.Process(r.Context(), internalpayouts.ProcessPayoutInput{
			PayoutID:      payoutID,
			Decision:      internalpayouts.ProcessDecision(req.Decision),
			AdminID:       admin,
			AdminNotes:    sanitizeNotes(req.AdminNotes),
			TransactionID: req.TransactionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payout)
	}
}

// WalletSnapshot returns the platform wallet balances.
func WalletSnapshot(svc internalwallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallet, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wallet)
	}
}

// GetCommission returns the active platform commission settings.
func GetCommission(svc internalcommission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Settings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

type updateCommissionRequest struct {
	Rate       string  `json:"commission_rate" validate:"required"`
	UpdateNote *string `json:"update_note,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCommission replaces the platform commission rate.
func UpdateCommission(svc internalcommission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCommissionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rate, err := decimal.NewFromString(req.Rate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid commission rate"))
			return
		}

		settings, err := svc.UpdateRate(r.Context(), internalcommission.UpdateRateInput{
			Rate:       rate,
			UpdatedBy:  admin,
			UpdateNote: req.UpdateNote,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// VerifyStore marks a store and its owning seller as verified.
func VerifyStore(svc internalstores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := parsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Verify(r.Context(), internalstores.VerifyStoreInput{
			StoreID: storeID,
			AdminID: admin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// AdminProfit returns the platform commission report grouped by store.
func AdminProfit(svc internalearnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.AdminProfit(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
