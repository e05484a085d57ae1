package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/pagination"
)

type stubOrderRepo struct {
	orders     []models.Order
	order      *models.Order
	nextCursor string
	listErr    error
	findErr    error
	updateErr  error

	updatedStatus enums.DeliveryStatus
}

func (s *stubOrderRepo) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	if s.listErr != nil {
		return nil, "", s.listErr
	}
	return s.orders, s.nextCursor, nil
}

func (s *stubOrderRepo) FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.order == nil || s.order.ID != orderID || s.order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) UpdateDelivery(ctx context.Context, orderID uuid.UUID, status enums.DeliveryStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedStatus = status
	return nil
}

func newTestService(t *testing.T, repo *stubOrderRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{OrderRepo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:       uuid.New(),
		UserID:   userID,
		Delivery: enums.DeliveryStatusPending,
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderedPrice: decimal.RequireFromString("12.00"), Quantity: 3},
			{ID: uuid.New(), OrderedPrice: decimal.RequireFromString("2.50"), Quantity: 2},
		},
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without order repo")
	}
}

func TestListOrdersMapsTotalsAndCursor(t *testing.T) {
	userID := uuid.New()
	repo := &stubOrderRepo{orders: []models.Order{*baseOrder(userID)}, nextCursor: "abc"}
	svc := newTestService(t, repo)

	page, err := svc.ListOrders(context.Background(), userID, pagination.Params{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(page.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(page.Orders))
	}
	if page.NextCursor != "abc" {
		t.Fatalf("expected cursor passthrough, got %q", page.NextCursor)
	}
	want := decimal.RequireFromString("41.00")
	if !page.Orders[0].TotalPrice.Equal(want) {
		t.Fatalf("expected total %s got %s", want, page.Orders[0].TotalPrice)
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	order := baseOrder(uuid.New())
	svc := newTestService(t, &stubOrderRepo{order: order})

	_, err := svc.GetOrder(context.Background(), uuid.New(), order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateDeliveryPendingToComplete(t *testing.T) {
	userID := uuid.New()
	order := baseOrder(userID)
	repo := &stubOrderRepo{order: order}
	svc := newTestService(t, repo)

	dto, err := svc.UpdateDelivery(context.Background(), userID, order.ID, enums.DeliveryStatusComplete)
	if err != nil {
		t.Fatalf("update delivery: %v", err)
	}
	if repo.updatedStatus != enums.DeliveryStatusComplete {
		t.Fatalf("expected repo write of complete, got %s", repo.updatedStatus)
	}
	if dto.Delivery != enums.DeliveryStatusComplete {
		t.Fatalf("expected dto delivery complete, got %s", dto.Delivery)
	}
}

func TestUpdateDeliveryRejectsPendingTarget(t *testing.T) {
	userID := uuid.New()
	order := baseOrder(userID)
	svc := newTestService(t, &stubOrderRepo{order: order})

	_, err := svc.UpdateDelivery(context.Background(), userID, order.ID, enums.DeliveryStatusPending)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateDeliveryRejectsUnknownStatus(t *testing.T) {
	userID := uuid.New()
	order := baseOrder(userID)
	svc := newTestService(t, &stubOrderRepo{order: order})

	_, err := svc.UpdateDelivery(context.Background(), userID, order.ID, enums.DeliveryStatus("shipped"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateDeliveryTerminalIsStateConflict(t *testing.T) {
	userID := uuid.New()
	order := baseOrder(userID)
	order.Delivery = enums.DeliveryStatusFailed
	svc := newTestService(t, &stubOrderRepo{order: order})

	_, err := svc.UpdateDelivery(context.Background(), userID, order.ID, enums.DeliveryStatusComplete)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListOrdersDependencyError(t *testing.T) {
	svc := newTestService(t, &stubOrderRepo{listErr: errors.New("boom")})

	_, err := svc.ListOrders(context.Background(), uuid.New(), pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
