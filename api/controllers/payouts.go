package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendora-backend/api/responses"
	"github.com/angelmondragon/vendora-backend/api/validators"
	internalpayouts "github.com/angelmondragon/vendora-backend/internal/payouts"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
	"github.com/angelmondragon/vendora-backend/pkg/logger"
)

type requestPayoutRequest struct {
	StoreID      *uuid.UUID  `json:"store_id,omitempty"`
	OrderIDs     []uuid.UUID `json:"order_ids,omitempty" validate:"omitempty,max=500"`
	RequestNotes *string     `json:"request_notes,omitempty" validate:"omitempty,max=2000"`
}

// RequestPayout aggregates the seller's eligible orders into a payout request.
func RequestPayout(svc internalpayouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req requestPayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payout, err := svc.Request(r.Context(), internalpayouts.RequestPayoutInput{
			SellerID:     actor,
			StoreID:      req.StoreID,
			OrderIDs:     req.OrderIDs,
			RequestNotes: sanitizeNotes(req.RequestNotes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payout)
	}
}

// GetPayout returns a single payout visible to the caller.
func GetPayout(svc internalpayouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payoutID, err := parsePathUUID(r, "payoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payout, err := svc.GetPayout(r.Context(), internalpayouts.GetPayoutInput{
			PayoutID:    payoutID,
			ActorUserID: actor,
			ActorRole:   actorRole(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payout)
	}
}

// ListPayouts pages through payouts. Sellers only ever see their own.
func ListPayouts(svc internalpayouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := buildPayoutFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPayouts(r.Context(), actor, actorRole(r), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func buildPayoutFilters(r *http.Request) (internalpayouts.PayoutFilters, error) {
	filters := internalpayouts.PayoutFilters{}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParsePayoutStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("store_id")); raw != "" {
		storeID, err := uuid.Parse(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store_id filter")
		}
		filters.StoreID = &storeID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("seller_id")); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller_id filter")
		}
		filters.SellerID = &sellerID
	}
	return filters, nil
}
