package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// Repository encapsulates cart and cart item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateCart inserts a cart row for the user. The carts_user_id_key unique
// constraint rejects a second cart; callers translate that violation.
func (r *Repository) CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindCartByUser loads the user's cart with items and product rows attached.
func (r *Repository) FindCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindCartForUser loads a cart by id scoped to its owner.
func (r *Repository) FindCartForUser(ctx context.Context, cartID, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCart removes the user's cart; items cascade at the storage layer.
// Returns the number of rows removed so callers can distinguish a miss.
func (r *Repository) DeleteCart(ctx context.Context, cartID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&models.Cart{})
	return res.RowsAffected, res.Error
}

// AddItemQuantity inserts a cart line or increments the quantity of the
// existing (cart, product) line in a single atomic statement.
func (r *Repository) AddItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		uuid.New(), cartID, productID, quantity, unitPrice, now, now,
	).Error
}

// FindItem loads the (cart, product) line with the product row attached.
func (r *Repository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemForUser loads a cart item by id scoped to the cart's owner.
func (r *Repository) FindItemForUser(ctx context.Context, itemID, userID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity replaces the quantity of an existing line.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem removes a single cart line.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{}).Error
}

// ClearItems removes every line from the cart. Used by checkout inside the
// conversion transaction.
func (r *Repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

// CartTotal computes the cart total in the database from quantity and the
// denormalized unit price. Never stored.
func (r *Repository) CartTotal(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0) AS total").
		Where("cart_id = ?", cartID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
