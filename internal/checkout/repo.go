package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// Repository holds the reads and writes that make up the cart-to-order
// conversion. Every method takes the open transaction so the snapshot read
// and both writes commit or roll back as one unit.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a checkout repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCartByUser loads the user's cart with items and product rows attached,
// through the conversion transaction.
func (r *Repository) FindCartByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.WithContext(ctx).
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

// CreateOrder inserts the order and its items in one association write.
func (r *Repository) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

// DeleteCartItems removes the given cart lines once they are snapshotted onto
// the order. Deleting by id, not cart_id, so a line inserted by a concurrent
// request after the snapshot read is never destroyed.
func (r *Repository) DeleteCartItems(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error {
	return tx.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Delete(&models.CartItem{}).Error
}
