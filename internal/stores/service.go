package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/db"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes store ownership lookups and the admin verification flow.
// The lookup methods back the access checks of the order and payout services.
type Service interface {
	SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error)
	SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
	SellerKYCStatus(ctx context.Context, sellerID uuid.UUID) (enums.KYCStatus, error)
	GetStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error)
	Verify(ctx context.Context, input VerifyStoreInput) (*models.Store, error)
}

// VerifyStoreInput captures an admin store verification.
type VerifyStoreInput struct {
	StoreID uuid.UUID
	AdminID uuid.UUID
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a stores service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stores repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error) {
	return s.repo.SellerOwnsStore(ctx, sellerID, storeID)
}

func (s *service) SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.SellerStoreIDs(ctx, sellerID)
}

// SellerKYCStatus reports the payout gate state for a seller. A seller who
// never completed onboarding has no profile row and counts as unverified.
func (s *service) SellerKYCStatus(ctx context.Context, sellerID uuid.UUID) (enums.KYCStatus, error) {
	profile, err := s.repo.FindSellerProfile(ctx, sellerID)
	if err != nil {
		if db.IsNotFound(err) {
			return enums.KYCStatusPendingVerification, nil
		}
		return "", err
	}
	return profile.KYCStatus, nil
}

func (s *service) GetStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	store, err := s.repo.FindStore(ctx, storeID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}

// Verify flips a store to verified and marks the owning seller's KYC as
// verified in the same transaction, opening the payout gate.
func (s *service) Verify(ctx context.Context, input VerifyStoreInput) (*models.Store, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if input.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var verified *models.Store
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		store, err := repo.FindStoreForUpdate(ctx, input.StoreID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
		}

		if store.Status == enums.StoreStatusVerified {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "store already verified")
		}

		owner, err := repo.FindUser(ctx, store.SellerID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "store owner no longer exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store owner")
		}
		if owner.Role != enums.UserRoleSeller {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "store owner is not a seller")
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":      enums.StoreStatusVerified,
			"verified_by": input.AdminID,
			"verified_at": now,
		}
		if err := repo.UpdateStore(ctx, store.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
		}
		if err := repo.MarkSellerVerified(ctx, store.SellerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark seller verified")
		}

		store.Status = enums.StoreStatusVerified
		store.VerifiedBy = &input.AdminID
		store.VerifiedAt = &now
		verified = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}
