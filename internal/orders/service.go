package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/pagination"
)

type orderRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	UpdateDelivery(ctx context.Context, orderID uuid.UUID, status enums.DeliveryStatus) error
}

// Service exposes read and delivery-transition operations on orders. Order
// creation happens in the checkout service; everything here treats orders as
// immutable except the delivery column.
type Service interface {
	ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderPageDTO, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateDelivery(ctx context.Context, userID, orderID uuid.UUID, status enums.DeliveryStatus) (*OrderDTO, error)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	OrderRepo orderRepository
}

type service struct {
	orderRepo orderRepository
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{orderRepo: params.OrderRepo}, nil
}

// ListOrders returns the user's orders newest first.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderPageDTO, error) {
	rows, next, err := s.orderRepo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &OrderPageDTO{Orders: make([]OrderDTO, 0, len(rows)), NextCursor: next}
	for _, row := range rows {
		page.Orders = append(page.Orders, NewOrderDTO(row))
	}
	return page, nil
}

// GetOrder returns a single order owned by the user.
func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.ownedOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	dto := NewOrderDTO(*order)
	return &dto, nil
}

// UpdateDelivery moves the order from pending to a terminal delivery state.
// Terminal states cannot transition again, and pending is not a target.
func (s *service) UpdateDelivery(ctx context.Context, userID, orderID uuid.UUID, status enums.DeliveryStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery status")
	}
	if !status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery can only move to complete or failed")
	}

	order, err := s.ownedOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Delivery.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivery status is already finalized")
	}

	if err := s.orderRepo.UpdateDelivery(ctx, order.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery status")
	}

	order.Delivery = status
	dto := NewOrderDTO(*order)
	return &dto, nil
}

func (s *service) ownedOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.FindForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
