package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db"
	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

type cartRepository interface {
	CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindCartForUser(ctx context.Context, cartID, userID uuid.UUID) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID, userID uuid.UUID) (int64, error)
	AddItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	FindItemForUser(ctx context.Context, itemID, userID uuid.UUID) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

type productRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes business rules for cart management. Every operation takes
// the acting user's id explicitly and refuses to touch carts it does not own.
type Service interface {
	CreateCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	ListCarts(ctx context.Context, userID uuid.UUID) ([]CartDTO, error)
	DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error
	AddItem(ctx context.Context, userID, cartID, productID uuid.UUID, quantity int) (*CartItemDTO, error)
	ListItems(ctx context.Context, userID, cartID uuid.UUID) ([]CartItemDTO, error)
	GetItem(ctx context.Context, userID, cartID, itemID uuid.UUID) (*CartItemDTO, error)
	UpdateItem(ctx context.Context, userID, cartID, itemID uuid.UUID, quantity int) (*CartItemDTO, error)
	RemoveItem(ctx context.Context, userID, cartID, itemID uuid.UUID) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productRepository
}

type service struct {
	cartRepo    cartRepository
	productRepo productRepository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{cartRepo: params.CartRepo, productRepo: params.ProductRepo}, nil
}

// CreateCart opens the user's cart. The one-cart-per-user rule lives in the
// storage layer; a duplicate insert comes back as a validation error rather
// than racing an existence check.
func (s *service) CreateCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.cartRepo.CreateCart(ctx, userID)
	if err != nil {
		if db.IsUniqueViolation(err, "carts_user_id_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "you already have a cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	dto := NewCartDTO(*cart)
	return &dto, nil
}

// ListCarts returns the user's carts. At most one exists; an empty slice
// means the user has not opened a cart yet.
func (s *service) ListCarts(ctx context.Context, userID uuid.UUID) ([]CartDTO, error) {
	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CartDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return []CartDTO{NewCartDTO(*cart)}, nil
}

// DeleteCart drops the cart and all of its items.
func (s *service) DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error {
	rows, err := s.cartRepo.DeleteCart(ctx, cartID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return nil
}

// AddItem puts a product into the cart. Re-adding a product already in the
// cart increments its quantity atomically instead of creating a second line.
// The live product price is snapshotted onto the line at insert time.
func (s *service) AddItem(ctx context.Context, userID, cartID, productID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.ownedCart(ctx, cartID, userID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.cartRepo.AddItemQuantity(ctx, cartID, productID, quantity, product.Price); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	item, err := s.cartRepo.FindItem(ctx, cartID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	dto := NewCartItemDTO(*item)
	return &dto, nil
}

// ListItems returns the lines of the user's cart oldest first.
func (s *service) ListItems(ctx context.Context, userID, cartID uuid.UUID) ([]CartItemDTO, error) {
	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart.ID != cartID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}

	dtos := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		dtos = append(dtos, NewCartItemDTO(item))
	}
	return dtos, nil
}

// GetItem returns a single line of the user's cart.
func (s *service) GetItem(ctx context.Context, userID, cartID, itemID uuid.UUID) (*CartItemDTO, error) {
	item, err := s.ownedItem(ctx, itemID, cartID, userID)
	if err != nil {
		return nil, err
	}
	dto := NewCartItemDTO(*item)
	return &dto, nil
}

// UpdateItem replaces the quantity of an existing line.
func (s *service) UpdateItem(ctx context.Context, userID, cartID, itemID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.ownedItem(ctx, itemID, cartID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}

	item.Quantity = quantity
	dto := NewCartItemDTO(*item)
	return &dto, nil
}

// RemoveItem deletes a single line from the cart.
func (s *service) RemoveItem(ctx context.Context, userID, cartID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, itemID, cartID, userID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return nil
}

func (s *service) ownedCart(ctx context.Context, cartID, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.FindCartForUser(ctx, cartID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) ownedItem(ctx context.Context, itemID, cartID, userID uuid.UUID) (*models.CartItem, error) {
	item, err := s.cartRepo.FindItemForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	if item.CartID != cartID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return item, nil
}
