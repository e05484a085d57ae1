package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db"
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindForUser(ctx context.Context, paymentID, userID uuid.UUID) (*models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status enums.PaymentStatus) error
}

type orderLoader interface {
	FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
}

// Service tracks payment records for orders. One payment exists per order,
// and after creation only the status column may change.
type Service interface {
	CreatePayment(ctx context.Context, userID, orderID uuid.UUID) (*PaymentDTO, error)
	GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*PaymentDTO, error)
	UpdateStatus(ctx context.Context, userID, paymentID uuid.UUID, status enums.PaymentStatus) (*PaymentDTO, error)
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	PaymentRepo paymentRepository
	OrderRepo   orderLoader
}

type service struct {
	paymentRepo paymentRepository
	orderRepo   orderLoader
}

// NewService builds a payments service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.PaymentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{paymentRepo: params.PaymentRepo, orderRepo: params.OrderRepo}, nil
}

// CreatePayment opens the payment record for one of the user's orders.
func (s *service) CreatePayment(ctx context.Context, userID, orderID uuid.UUID) (*PaymentDTO, error) {
	if _, err := s.orderRepo.FindForUser(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	payment := &models.Payment{
		ID:      uuid.New(),
		OrderID: orderID,
		Status:  enums.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if db.IsUniqueViolation(err, "payments_order_id_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment already exists for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	dto := NewPaymentDTO(*payment)
	return &dto, nil
}

// GetPayment loads a payment through the order's owner.
func (s *service) GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.ownedPayment(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}
	dto := NewPaymentDTO(*payment)
	return &dto, nil
}

// UpdateStatus writes a new payment status. Every other field is immutable.
func (s *service) UpdateStatus(ctx context.Context, userID, paymentID uuid.UUID, status enums.PaymentStatus) (*PaymentDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	payment, err := s.ownedPayment(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
	}

	payment.Status = status
	dto := NewPaymentDTO(*payment)
	return &dto, nil
}

func (s *service) ownedPayment(ctx context.Context, paymentID, userID uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindForUser(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}
