package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

type stubPaymentRepo struct {
	payment   *models.Payment
	createErr error
	findErr   error
	updateErr error

	created       *models.Payment
	updatedStatus enums.PaymentStatus
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = payment
	return nil
}

func (s *stubPaymentRepo) FindForUser(ctx context.Context, paymentID, userID uuid.UUID) (*models.Payment, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.payment == nil || s.payment.ID != paymentID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.payment, nil
}

func (s *stubPaymentRepo) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status enums.PaymentStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedStatus = status
	return nil
}

type stubOrderLoader struct {
	order *models.Order
}

func (s *stubOrderLoader) FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID || s.order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func newTestService(t *testing.T, repo *stubPaymentRepo, orders *stubOrderLoader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{PaymentRepo: repo, OrderRepo: orders})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreatePaymentStartsCreated(t *testing.T) {
	userID := uuid.New()
	order := &models.Order{ID: uuid.New(), UserID: userID}
	repo := &stubPaymentRepo{}
	svc := newTestService(t, repo, &stubOrderLoader{order: order})

	dto, err := svc.CreatePayment(context.Background(), userID, order.ID)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if dto.Status != enums.PaymentStatusCreated {
		t.Fatalf("expected created status, got %s", dto.Status)
	}
	if repo.created == nil || repo.created.OrderID != order.ID {
		t.Fatal("expected payment insert bound to the order")
	}
}

func TestCreatePaymentForeignOrder(t *testing.T) {
	order := &models.Order{ID: uuid.New(), UserID: uuid.New()}
	svc := newTestService(t, &stubPaymentRepo{}, &stubOrderLoader{order: order})

	_, err := svc.CreatePayment(context.Background(), uuid.New(), order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreatePaymentDuplicateIsValidationError(t *testing.T) {
	userID := uuid.New()
	order := &models.Order{ID: uuid.New(), UserID: userID}
	repo := &stubPaymentRepo{createErr: &pgconn.PgError{Code: "23505", ConstraintName: "payments_order_id_key"}}
	svc := newTestService(t, repo, &stubOrderLoader{order: order})

	_, err := svc.CreatePayment(context.Background(), userID, order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusWritesOnlyStatus(t *testing.T) {
	payment := &models.Payment{ID: uuid.New(), OrderID: uuid.New(), Status: enums.PaymentStatusCreated}
	repo := &stubPaymentRepo{payment: payment}
	svc := newTestService(t, repo, &stubOrderLoader{})

	dto, err := svc.UpdateStatus(context.Background(), uuid.New(), payment.ID, enums.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.updatedStatus != enums.PaymentStatusPaid {
		t.Fatalf("expected repo write of paid, got %s", repo.updatedStatus)
	}
	if dto.Status != enums.PaymentStatusPaid {
		t.Fatalf("expected dto status paid, got %s", dto.Status)
	}
	if dto.OrderID != payment.OrderID {
		t.Fatal("order binding must not change")
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	payment := &models.Payment{ID: uuid.New(), Status: enums.PaymentStatusCreated}
	svc := newTestService(t, &stubPaymentRepo{payment: payment}, &stubOrderLoader{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), payment.ID, enums.PaymentStatus("settled"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	svc := newTestService(t, &stubPaymentRepo{}, &stubOrderLoader{})

	_, err := svc.GetPayment(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
