package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/internal/wallet"
	"github.com/angelmondragon/vendora-backend/pkg/db/models"
	"github.com/angelmondragon/vendora-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vendora-backend/pkg/errors"
	"github.com/angelmondragon/vendora-backend/pkg/metrics"
	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type stubOrdersRepo struct {
	order     *models.Order
	updates   map[string]any
	updateErr error
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.order = order
	return order, nil
}

func (s *stubOrdersRepo) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) FindOrderForUpdate(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.FindOrder(ctx, orderID)
}

func (s *stubOrdersRepo) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	if s.order == nil || s.order.ID != orderID {
		return gorm.ErrRecordNotFound
	}
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = updates
	return nil
}

func (s *stubOrdersRepo) ListStoreOrders(ctx context.Context, storeIDs []uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	panic("not implemented")
}

func (s *stubOrdersRepo) ListBuyerOrders(ctx context.Context, userID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	panic("not implemented")
}

type stubStoreAccess struct {
	ownerID  uuid.UUID
	storeIDs []uuid.UUID
}

func (s *stubStoreAccess) SellerOwnsStore(ctx context.Context, sellerID, storeID uuid.UUID) (bool, error) {
	return sellerID == s.ownerID, nil
}

func (s *stubStoreAccess) SellerStoreIDs(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	return s.storeIDs, nil
}

type stubRateReader struct {
	rate decimal.Decimal
}

func (s *stubRateReader) CurrentRate(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error) {
	return s.rate, nil
}

type walletCredit struct {
	total      decimal.Decimal
	commission decimal.Decimal
}

type stubWalletRepo struct {
	credits []walletCredit
}

func (s *stubWalletRepo) WithTx(tx *gorm.DB) wallet.Repository {
	return s
}

func (s *stubWalletRepo) Find(ctx context.Context) (*models.AdminWallet, error) {
	return &models.AdminWallet{ID: models.AdminWalletID}, nil
}

func (s *stubWalletRepo) CreditSettlement(ctx context.Context, total, commission decimal.Decimal) error {
	s.credits = append(s.credits, walletCredit{total: total, commission: commission})
	return nil
}

func (s *stubWalletRepo) ReservePayout(ctx context.Context, amount decimal.Decimal) error {
	return nil
}

func (s *stubWalletRepo) CompletePayout(ctx context.Context, amount decimal.Decimal) error {
	return nil
}

func (s *stubWalletRepo) ReleasePayout(ctx context.Context, amount decimal.Decimal) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(repo *stubOrdersRepo, stores *stubStoreAccess, walletRepo *stubWalletRepo) Service {
	svc, err := NewService(repo, stubTxRunner{}, stores, &stubRateReader{rate: dec("0.05")}, walletRepo, nil)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestUpdateStatusPaidStampsSettlementAndCreditsWallet(t *testing.T) {
	sellerID := uuid.New()
	orderID := uuid.New()
	storeID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:          orderID,
			StoreID:     storeID,
			UserID:      uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: dec("1000.00"),
		},
	}
	walletRepo := &stubWalletRepo{}
	svc := newTestService(repo, &stubStoreAccess{ownerID: sellerID}, walletRepo)

	order, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusPaid,
		ActorUserID: sellerID,
		ActorRole:   enums.UserRoleSeller,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	if order.Status != enums.OrderStatusPaid {
		t.Fatalf("expected status paid got %s", order.Status)
	}
	if !order.AdminCommission.Equal(dec("50.00")) {
		t.Fatalf("expected commission 50.00 got %s", order.AdminCommission)
	}
	if !order.SellerAmount.Equal(dec("950.00")) {
		t.Fatalf("expected seller amount 950.00 got %s", order.SellerAmount)
	}
	if order.PayoutStatus != enums.OrderPayoutStatusPending {
		t.Fatalf("expected payout_status pending got %s", order.PayoutStatus)
	}
	if order.PaidAt == nil {
		t.Fatal("expected paid_at to be set")
	}

	if len(walletRepo.credits) != 1 {
		t.Fatalf("expected one wallet credit got %d", len(walletRepo.credits))
	}
	if !walletRepo.credits[0].total.Equal(dec("1000.00")) || !walletRepo.credits[0].commission.Equal(dec("50.00")) {
		t.Fatalf("unexpected credit %+v", walletRepo.credits[0])
	}
}

func TestUpdateStatusFailedWriteCountsNothing(t *testing.T) {
	sellerID := uuid.New()
	orderID := uuid.New()
	storeID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:          orderID,
			StoreID:     storeID,
			UserID:      uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: dec("1000.00"),
		},
		updateErr: errors.New("write refused"),
	}
	reg := prometheus.NewRegistry()
	svc, err := NewService(repo, stubTxRunner{}, &stubStoreAccess{ownerID: sellerID}, &stubRateReader{rate: dec("0.05")}, &stubWalletRepo{}, metrics.NewSettlementMetrics(reg))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	input := UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusPaid,
		ActorUserID: sellerID,
		ActorRole:   enums.UserRoleSeller,
	}
	if _, err := svc.UpdateStatus(context.Background(), input); err == nil {
		t.Fatal("expected error from failed order write")
	}
	if got := counterSamples(t, reg, "order_settlements_stamped"); got != 0 {
		t.Fatalf("rolled back settlement must not be counted, got %d samples", got)
	}
	if got := counterSamples(t, reg, "order_status_transitions"); got != 0 {
		t.Fatalf("rolled back transition must not be counted, got %d samples", got)
	}

	repo.updateErr = nil
	if _, err := svc.UpdateStatus(context.Background(), input); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if got := counterSamples(t, reg, "order_settlements_stamped"); got != 1 {
		t.Fatalf("expected one settlement sample, got %d", got)
	}
	if got := counterSamples(t, reg, "order_status_transitions"); got != 1 {
		t.Fatalf("expected one transition sample, got %d", got)
	}
}

func counterSamples(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return len(mf.GetMetric())
		}
	}
	return 0
}

func TestUpdateStatusDoesNotReStampSettledOrder(t *testing.T) {
	sellerID := uuid.New()
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:              orderID,
			StoreID:         uuid.New(),
			Status:          enums.OrderStatusPaid,
			TotalAmount:     dec("1000.00"),
			AdminCommission: dec("50.00"),
			SellerAmount:    dec("950.00"),
			PayoutStatus:    enums.OrderPayoutStatusPending,
		},
	}
	walletRepo := &stubWalletRepo{}
	svc := newTestService(repo, &stubStoreAccess{ownerID: sellerID}, walletRepo)

	order, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusShipped,
		ActorUserID: sellerID,
		ActorRole:   enums.UserRoleSeller,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	if _, stamped := repo.updates["admin_commission"]; stamped {
		t.Fatal("settled order must not be re-stamped")
	}
	if !order.AdminCommission.Equal(dec("50.00")) || !order.SellerAmount.Equal(dec("950.00")) {
		t.Fatalf("settlement fields changed: %s / %s", order.AdminCommission, order.SellerAmount)
	}
	if len(walletRepo.credits) != 0 {
		t.Fatal("wallet must only be credited on the transition into paid")
	}
}

func TestUpdateStatusShippedWithoutPaymentStampsButNoCredit(t *testing.T) {
	sellerID := uuid.New()
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:          orderID,
			StoreID:     uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: dec("200.00"),
		},
	}
	walletRepo := &stubWalletRepo{}
	svc := newTestService(repo, &stubStoreAccess{ownerID: sellerID}, walletRepo)

	order, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusShipped,
		ActorUserID: sellerID,
		ActorRole:   enums.UserRoleSeller,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if order.PayoutStatus != enums.OrderPayoutStatusPending {
		t.Fatalf("expected payout_status stamped got %q", order.PayoutStatus)
	}
	if len(walletRepo.credits) != 0 {
		t.Fatal("wallet credit is reserved for the paid transition")
	}
}

func TestUpdateStatusIllegalTransitions(t *testing.T) {
	cases := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
	}{
		{enums.OrderStatusPending, enums.OrderStatusDelivered},
		{enums.OrderStatusPaid, enums.OrderStatusDelivered},
		{enums.OrderStatusPaid, enums.OrderStatusPending},
		{enums.OrderStatusShipped, enums.OrderStatusPaid},
		{enums.OrderStatusShipped, enums.OrderStatusCancelled},
		{enums.OrderStatusDelivered, enums.OrderStatusShipped},
		{enums.OrderStatusDelivered, enums.OrderStatusCancelled},
		{enums.OrderStatusCancelled, enums.OrderStatusPaid},
		{enums.OrderStatusCancelled, enums.OrderStatusPending},
		{enums.OrderStatusPaid, enums.OrderStatusPaid},
	}

	sellerID := uuid.New()
	for _, tc := range cases {
		orderID := uuid.New()
		repo := &stubOrdersRepo{
			order: &models.Order{
				ID:          orderID,
				StoreID:     uuid.New(),
				Status:      tc.from,
				TotalAmount: dec("100.00"),
			},
		}
		walletRepo := &stubWalletRepo{}
		svc := newTestService(repo, &stubStoreAccess{ownerID: sellerID}, walletRepo)

		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			OrderID:     orderID,
			Status:      tc.to,
			ActorUserID: sellerID,
			ActorRole:   enums.UserRoleSeller,
		})
		if err == nil {
			t.Fatalf("%s -> %s: expected error", tc.from, tc.to)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if repo.updates != nil {
			t.Fatalf("%s -> %s: order must be left unmodified", tc.from, tc.to)
		}
		if len(walletRepo.credits) != 0 {
			t.Fatalf("%s -> %s: wallet must be left unmodified", tc.from, tc.to)
		}
	}
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:          orderID,
			StoreID:     uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: dec("100.00"),
		},
	}
	svc := newTestService(repo, &stubStoreAccess{ownerID: uuid.New()}, &stubWalletRepo{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusPaid,
		ActorUserID: uuid.New(),
		ActorRole:   enums.UserRoleSeller,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.updates != nil {
		t.Fatal("order must be left unmodified")
	}
}

func TestUpdateStatusAdminOverride(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:          orderID,
			StoreID:     uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: dec("100.00"),
		},
	}
	svc := newTestService(repo, &stubStoreAccess{ownerID: uuid.New()}, &stubWalletRepo{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusCancelled,
		ActorUserID: uuid.New(),
		ActorRole:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin should bypass ownership, got %v", err)
	}
}

func TestGetOrderConflatesNotOwned(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:      orderID,
			StoreID: uuid.New(),
			UserID:  uuid.New(),
			Status:  enums.OrderStatusPending,
		},
	}
	svc := newTestService(repo, &stubStoreAccess{ownerID: uuid.New()}, &stubWalletRepo{})

	_, err := svc.GetOrder(context.Background(), GetOrderInput{
		OrderID:     orderID,
		ActorUserID: uuid.New(),
		ActorRole:   enums.UserRoleSeller,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}
