package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/internal/commission"
	"github.com/angelmondragon/vendora-backend/internal/wallet"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
	"github.com/angelmondragon/vendora-backend/pkg/metrics"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StoreAccess resolves which stores an actor may act on.
type StoreAccess interface {
	SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error)
	SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
}

// Service defines order operations beyond repository reads.
type Service interface {
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
	GetOrder(ctx context.Context, input GetOrderInput) (*models.Order, error)
	ListSellerOrders(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ListBuyerOrders(ctx context.Context, userID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
}

// UpdateStatusInput captures a requested order status transition.
type UpdateStatusInput struct {
	OrderID        uuid.UUID
	Status         enums.OrderStatus
	TrackingNumber *string
	Notes          *string
	ActorUserID    uuid.UUID
	ActorRole      enums.UserRole
}

// GetOrderInput identifies an order and the caller asking for it.
type GetOrderInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// legalTransitions is the full order state machine. Absent pairs are illegal,
// including self-transitions; delivered and cancelled are terminal.
var legalTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending: {enums.OrderStatusPaid, enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusPaid:    {enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusShipped: {enums.OrderStatusDelivered},
}

func canTransition(from, to enums.OrderStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type service struct {
	repo    Repository
	tx      txRunner
	stores  StoreAccess
	rates   commission.RateReader
	wallet  wallet.Repository
	metrics *metrics.SettlementMetrics
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, stores StoreAccess, rates commission.RateReader, walletRepo wallet.Repository, m *metrics.SettlementMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store access required")
	}
	if rates == nil {
		return nil, fmt.Errorf("commission rate reader required")
	}
	if walletRepo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		stores:  stores,
		rates:   rates,
		wallet:  walletRepo,
		metrics: m,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Status))
	}

	var updated *models.Order
	var settled bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if !input.ActorRole.IsAdmin() {
			owns, err := s.stores.SellerOwnsStore(ctx, input.ActorUserID, order.StoreID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store ownership")
			}
			if !owns {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to store")
			}
		}

		if !canTransition(order.Status, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("Cannot change status from %s to %s", order.Status, input.Status))
		}

		now := time.Now().UTC()
		updates := map[string]any{"status": input.Status}
		if input.TrackingNumber != nil {
			updates["tracking_number"] = input.TrackingNumber
		}
		if input.Notes != nil {
			updates["notes"] = input.Notes
		}
		switch input.Status {
		case enums.OrderStatusPaid:
			updates["paid_at"] = now
		case enums.OrderStatusDelivered:
			updates["delivered_at"] = now
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = now
		}

		var split commission.Settlement
		if input.Status.IsPayable() && !order.Settled() {
			rate, err := s.rates.CurrentRate(ctx, tx)
			if err != nil {
				return err
			}
			split, err = commission.Split(order.TotalAmount, rate)
			if err != nil {
				return err
			}
			updates["admin_commission"] = split.Commission
			updates["seller_amount"] = split.SellerAmount
			updates["payout_status"] = enums.OrderPayoutStatusPending
			settled = true

			// money is realized once, on the first payment confirmation
			if input.Status == enums.OrderStatusPaid {
				if err := s.wallet.WithTx(tx).CreditSettlement(ctx, order.TotalAmount, split.Commission); err != nil {
					return err
				}
			}
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		order.Status = input.Status
		if input.TrackingNumber != nil {
			order.TrackingNumber = input.TrackingNumber
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}
		switch input.Status {
		case enums.OrderStatusPaid:
			order.PaidAt = &now
		case enums.OrderStatusDelivered:
			order.DeliveredAt = &now
		case enums.OrderStatusCancelled:
			order.CancelledAt = &now
		}
		if _, stamped := updates["payout_status"]; stamped {
			order.AdminCommission = split.Commission
			order.SellerAmount = split.SellerAmount
			order.PayoutStatus = enums.OrderPayoutStatusPending
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(input.Status.String())
	if settled {
		s.metrics.IncSettlement(input.Status.String())
	}
	return updated, nil
}

func (s *service) GetOrder(ctx context.Context, input GetOrderInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	order, err := s.repo.FindOrder(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if input.ActorRole.IsAdmin() || order.UserID == input.ActorUserID {
		return order, nil
	}
	owns, err := s.stores.SellerOwnsStore(ctx, input.ActorUserID, order.StoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store ownership")
	}
	if !owns {
		// absent and not-owned look the same to the caller
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListSellerOrders(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	storeIDs, err := s.stores.SellerStoreIDs(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve seller stores")
	}
	list, err := s.repo.ListStoreOrders(ctx, storeIDs, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return list, nil
}

func (s *service) ListBuyerOrders(ctx context.Context, userID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListBuyerOrders(ctx, userID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return list, nil
}
