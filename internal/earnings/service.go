package earnings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

// StoreAccess resolves seller store ownership for report scoping.
type StoreAccess interface {
	SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error)
	SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
}

// Service exposes the read-only earnings reports.
type Service interface {
	SellerSummary(ctx context.Context, sellerID uuid.UUID) (*SellerSummary, error)
	StoreBreakdown(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, storeID uuid.UUID) (*StoreBreakdown, error)
	AdminProfit(ctx context.Context) (*AdminProfitReport, error)
}

type service struct {
	repo   Repository
	stores StoreAccess
}

// NewService wires the earnings service with its dependencies.
func NewService(repo Repository, stores StoreAccess) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("earnings repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store access required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) SellerSummary(ctx context.Context, sellerID uuid.UUID) (*SellerSummary, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	storeIDs, err := s.stores.SellerStoreIDs(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller stores")
	}
	return s.repo.SellerSummary(ctx, sellerID, storeIDs)
}

func (s *service) StoreBreakdown(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, storeID uuid.UUID) (*StoreBreakdown, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}

	if !actorRole.IsAdmin() {
		owns, err := s.stores.SellerOwnsStore(ctx, actorID, storeID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store ownership")
		}
		if !owns {
			// absent and not-owned look the same to the caller
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
	}

	return s.repo.StoreBreakdown(ctx, storeID)
}

func (s *service) AdminProfit(ctx context.Context) (*AdminProfitReport, error) {
	return s.repo.AdminProfit(ctx)
}
