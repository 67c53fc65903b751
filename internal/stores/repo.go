package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// Repository defines persistence operations for stores and the seller
// profiles backing the payout KYC gate.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error)
	FindStoreForUpdate(ctx context.Context, storeID uuid.UUID) (*models.Store, error)
	SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error)
	SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
	FindSellerProfile(ctx context.Context, sellerID uuid.UUID) (*models.SellerProfile, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateStore(ctx context.Context, storeID uuid.UUID, updates map[string]any) error
	MarkSellerVerified(ctx context.Context, sellerID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stores repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("id = ?", storeID).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *repository) FindStoreForUpdate(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", storeID).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *repository) SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ? AND seller_id = ?", storeID, sellerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("seller_id = ?", sellerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) FindSellerProfile(ctx context.Context, sellerID uuid.UUID) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", sellerID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateStore(ctx context.Context, storeID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", storeID).
		Updates(updates).Error
}

func (r *repository) MarkSellerVerified(ctx context.Context, sellerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SellerProfile{}).
		Where("user_id = ?", sellerID).
		Update("kyc_status", enums.KYCStatusVerified).Error
}
