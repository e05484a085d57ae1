package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/internal/orders"
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type addressLoader interface {
	FindAddressForUser(ctx context.Context, addressID, userID uuid.UUID) (*models.Address, error)
}

type checkoutRepository interface {
	FindCartByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error)
	CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error
	DeleteCartItems(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error
}

// CheckoutInput names the addresses the order ships and bills to. Both must
// belong to the acting user.
type CheckoutInput struct {
	BillingAddressID  uuid.UUID
	ShippingAddressID uuid.UUID
}

// Service converts the user's cart into an order. The cart is read, snapshotted
// onto order items, and cleared inside a single transaction so no line can be
// lost between the read and the commit.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Tx           txRunner
	CheckoutRepo checkoutRepository
	AddressRepo  addressLoader
}

type service struct {
	tx           txRunner
	checkoutRepo checkoutRepository
	addressRepo  addressLoader
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.CheckoutRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout repo is required")
	}
	if params.AddressRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	return &service{
		tx:           params.Tx,
		checkoutRepo: params.CheckoutRepo,
		addressRepo:  params.AddressRepo,
	}, nil
}

// CreateOrder runs the cart-to-order conversion for the acting user. Address
// ownership is checked up front; the cart read, the order insert, and the cart
// clear all share one transaction.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error) {
	if err := s.ensureOwnedAddress(ctx, input.BillingAddressID, userID, "billing"); err != nil {
		return nil, err
	}
	if err := s.ensureOwnedAddress(ctx, input.ShippingAddressID, userID, "shipping"); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cart, err := s.checkoutRepo.FindCartByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(cart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order = buildOrder(userID, input, cart.Items)
		if err := s.checkoutRepo.CreateOrder(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		// Only the snapshotted lines are removed; a line added by a
		// concurrent request stays in the cart for the next conversion.
		if err := s.checkoutRepo.DeleteCartItems(ctx, tx, snapshotItemIDs(cart.Items)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := orders.NewOrderDTO(*order)
	return &dto, nil
}

func (s *service) ensureOwnedAddress(ctx context.Context, addressID, userID uuid.UUID, label string) error {
	if addressID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, label+" address id is required")
	}
	if _, err := s.addressRepo.FindAddressForUser(ctx, addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, label+" address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+label+" address")
	}
	return nil
}

// buildOrder snapshots each cart line onto an order item. OrderedPrice copies
// the line's denormalized unit price, not the live product price, so later
// catalog changes never alter the order.
func buildOrder(userID uuid.UUID, input CheckoutInput, items []models.CartItem) *models.Order {
	order := &models.Order{
		ID:                uuid.New(),
		UserID:            userID,
		BillingAddressID:  input.BillingAddressID,
		ShippingAddressID: input.ShippingAddressID,
		Delivery:          enums.DeliveryStatusPending,
		Items:             make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			OrderedPrice: item.UnitPrice,
			Quantity:     item.Quantity,
			Product:      item.Product,
		})
	}
	return order
}

func snapshotItemIDs(items []models.CartItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
