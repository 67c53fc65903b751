package controllers

import (
	"net/http"

	"github.com/angelmondragon/vendora-backend/api/responses"
	internalearnings "github.com/angelmondragon/vendora-backend/internal/earnings"
	"github.com/angelmondragon/vendora-backend/pkg/logger"
)

// EarningsSummary returns the calling seller's aggregated earnings.
func EarningsSummary(svc internalearnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.SellerSummary(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// StoreEarnings returns the revenue breakdown for a single store.
func StoreEarnings(svc internalearnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := parsePathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.StoreBreakdown(r.Context(), actor, actorRole(r), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}
