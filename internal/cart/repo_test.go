package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryAddItemQuantity_incrementsExistingLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	cart, err := repo.CreateCart(ctx, userID)
	require.NoError(t, err)

	product := newProduct(t, db, "Espresso Beans", "19.99")

	require.NoError(t, repo.AddItemQuantity(ctx, cart.ID, product.ID, 2, product.Price))
	require.NoError(t, repo.AddItemQuantity(ctx, cart.ID, product.ID, 3, product.Price))

	item, err := repo.FindItem(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "19.99", item.UnitPrice.StringFixed(2))
	require.NotNil(t, item.Product)
	assert.Equal(t, "Espresso Beans", item.Product.Name)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	total, err := repo.CartTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, "99.95", total.StringFixed(2))
}

func TestRepositoryFindCartByUser_ordersItemsByCreation(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	cart, err := repo.CreateCart(ctx, userID)
	require.NoError(t, err)

	first := newProduct(t, db, "First Product", "5.00")
	second := newProduct(t, db, "Second Product", "7.50")

	now := time.Now().UTC()
	older := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: first.ID,
		Quantity:  1,
		UnitPrice: first.Price,
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
	newer := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: second.ID,
		Quantity:  2,
		UnitPrice: second.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(newer).Error)
	require.NoError(t, db.Create(older).Error)

	loaded, err := repo.FindCartByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, first.ID, loaded.Items[0].ProductID)
	assert.Equal(t, second.ID, loaded.Items[1].ProductID)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "First Product", loaded.Items[0].Product.Name)
}

func TestRepositoryDeleteCart_scopedToOwner(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	cart, err := repo.CreateCart(ctx, userID)
	require.NoError(t, err)

	rows, err := repo.DeleteCart(ctx, cart.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = repo.DeleteCart(ctx, cart.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestRepositoryFindItemForUser_rejectsForeignCartItem(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	cart, err := repo.CreateCart(ctx, owner)
	require.NoError(t, err)

	product := newProduct(t, db, "Scoped Product", "3.25")
	require.NoError(t, repo.AddItemQuantity(ctx, cart.ID, product.ID, 1, product.Price))

	item, err := repo.FindItem(ctx, cart.ID, product.ID)
	require.NoError(t, err)

	_, err = repo.FindItemForUser(ctx, item.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindItemForUser(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
}
