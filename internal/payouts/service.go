package payouts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/internal/wallet"
	"github.com/angelmondragon/vendora-backend/pkg/config"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/vendora-backend/pkg/db/types"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
	"github.com/angelmondragon/vendora-backend/pkg/metrics"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SellerAccess resolves store ownership and the KYC gate for a seller.
type SellerAccess interface {
	SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error)
	SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
	SellerKYCStatus(ctx context.Context, sellerID uuid.UUID) (enums.KYCStatus, error)
}

// Service defines the payout aggregation and admin settlement operations.
type Service interface {
	Request(ctx context.Context, input RequestPayoutInput) (*models.Payout, error)
	Process(ctx context.Context, input ProcessPayoutInput) (*models.Payout, error)
	GetPayout(ctx context.Context, input GetPayoutInput) (*models.Payout, error)
	ListPayouts(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, params pagination.Params, filters PayoutFilters) (*PayoutList, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	sellers SellerAccess
	wallet  wallet.Repository
	cfg     config.PayoutsConfig
	metrics *metrics.SettlementMetrics
}

// NewService builds a payouts service with the required dependencies.
func NewService(repo Repository, tx txRunner, sellers SellerAccess, walletRepo wallet.Repository, cfg config.PayoutsConfig, m *metrics.SettlementMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payouts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if sellers == nil {
		return nil, fmt.Errorf("seller access required")
	}
	if walletRepo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		sellers: sellers,
		wallet:  walletRepo,
		cfg:     cfg,
		metrics: m,
	}, nil
}

func (s *service) Request(ctx context.Context, input RequestPayoutInput) (*models.Payout, error) {
	if input.SellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	kyc, err := s.sellers.SellerKYCStatus(ctx, input.SellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller kyc status")
	}
	if kyc != enums.KYCStatusVerified {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "KYC verification required before requesting payouts")
	}

	var storeIDs []uuid.UUID
	if input.StoreID != nil {
		owns, err := s.sellers.SellerOwnsStore(ctx, input.SellerID, *input.StoreID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store ownership")
		}
		if !owns {
			// absent and not-owned look the same to the caller
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		storeIDs = []uuid.UUID{*input.StoreID}
	} else {
		storeIDs, err = s.sellers.SellerStoreIDs(ctx, input.SellerID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve seller stores")
		}
	}

	var created *models.Payout
	start := time.Now()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		candidates, err := repo.FindPayoutCandidates(ctx, storeIDs, input.OrderIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "select payout candidates")
		}
		if len(candidates) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "No orders available for payout")
		}

		gross := decimal.Zero
		commissionSum := decimal.Zero
		net := decimal.Zero
		ids := make(dbtypes.UUIDArray, 0, len(candidates))
		for _, order := range candidates {
			gross = gross.Add(order.TotalAmount)
			commissionSum = commissionSum.Add(order.AdminCommission)
			net = net.Add(order.SellerAmount)
			ids = append(ids, order.ID)
		}

		payout := &models.Payout{
			SellerID:         input.SellerID,
			StoreID:          input.StoreID,
			GrossAmount:      gross,
			CommissionAmount: commissionSum,
			Amount:           net,
			Status:           enums.PayoutStatusRequested,
			OrderIDs:         ids,
			RequestNotes:     input.RequestNotes,
		}
		if _, err := repo.CreatePayout(ctx, payout); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payout")
		}

		claimed, err := repo.MarkOrdersRequested(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim payout orders")
		}
		if claimed != int64(len(ids)) {
			return pkgerrors.New(pkgerrors.CodeConflict, "orders were claimed by a concurrent payout request")
		}

		if err := s.wallet.WithTx(tx).ReservePayout(ctx, net); err != nil {
			return err
		}

		created = payout
		return nil
	})
	if err != nil {
		s.metrics.ObservePayoutDuration("error", time.Since(start))
		return nil, err
	}

	s.metrics.IncPayoutEvent("requested")
	s.metrics.ObservePayoutDuration("success", time.Since(start))
	return created, nil
}

func (s *service) Process(ctx context.Context, input ProcessPayoutInput) (*models.Payout, error) {
	if input.PayoutID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payout id required")
	}
	if input.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Decision != ProcessDecisionApprove && input.Decision != ProcessDecisionReject {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approved or rejected")
	}

	var processed *models.Payout
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		payout, err := repo.FindPayoutForUpdate(ctx, input.PayoutID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payout")
		}

		if payout.Status != enums.PayoutStatusPending && payout.Status != enums.PayoutStatusRequested {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payout already processed")
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"processed_by": input.AdminID,
			"processed_at": now,
		}
		if input.AdminNotes != nil {
			updates["admin_notes"] = input.AdminNotes
		}

		switch input.Decision {
		case ProcessDecisionApprove:
			updates["status"] = enums.PayoutStatusCompleted
			if input.TransactionID != nil {
				updates["transaction_id"] = input.TransactionID
			}

			finalized, err := repo.MarkOrdersCompleted(ctx, payout.OrderIDs, payout.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize payout orders")
			}
			if finalized != int64(len(payout.OrderIDs)) {
				return pkgerrors.New(pkgerrors.CodeConflict, "payout orders are no longer claimed")
			}
			if err := s.wallet.WithTx(tx).CompletePayout(ctx, payout.Amount); err != nil {
				return err
			}
			payout.Status = enums.PayoutStatusCompleted

		case ProcessDecisionReject:
			updates["status"] = enums.PayoutStatusRejected
			if s.cfg.ReleaseOnReject {
				released, err := repo.ReleaseOrderClaims(ctx, payout.OrderIDs)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release payout orders")
				}
				if released != int64(len(payout.OrderIDs)) {
					return pkgerrors.New(pkgerrors.CodeConflict, "payout orders are no longer claimed")
				}
			}
			if err := s.wallet.WithTx(tx).ReleasePayout(ctx, payout.Amount); err != nil {
				return err
			}
			payout.Status = enums.PayoutStatusRejected
		}

		if err := repo.UpdatePayout(ctx, payout.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payout")
		}

		payout.ProcessedBy = &input.AdminID
		payout.ProcessedAt = &now
		payout.AdminNotes = input.AdminNotes
		if input.Decision == ProcessDecisionApprove && input.TransactionID != nil {
			payout.TransactionID = input.TransactionID
		}
		processed = payout
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncPayoutEvent(string(input.Decision))
	return processed, nil
}

func (s *service) GetPayout(ctx context.Context, input GetPayoutInput) (*models.Payout, error) {
	if input.PayoutID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payout id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	payout, err := s.repo.FindPayout(ctx, input.PayoutID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payout")
	}
	if !input.ActorRole.IsAdmin() && payout.SellerID != input.ActorUserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
	}
	return payout, nil
}

func (s *service) ListPayouts(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, params pagination.Params, filters PayoutFilters) (*PayoutList, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !actorRole.IsAdmin() {
		filters.SellerID = &actorID
	}
	list, err := s.repo.ListPayouts(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payouts")
	}
	return list, nil
}
