package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
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
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  billing_address_id TEXT NOT NULL,
  shipping_address_id TEXT NOT NULL,
  delivery TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  ordered_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

// racingAddRepo inserts one extra cart line right after the snapshot read,
// standing in for a second request landing mid-conversion.
type racingAddRepo struct {
	*Repository
	line models.CartItem
}

func (r *racingAddRepo) FindCartByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.Repository.FindCartByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	r.line.CartID = cart.ID
	if err := tx.WithContext(ctx).Create(&r.line).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateOrderKeepsLineAddedDuringConversion(t *testing.T) {
	db := setupCheckoutTestDB(t)
	ctx := context.Background()

	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	require.NoError(t, db.Create(cart).Error)

	ordered := seedProduct(t, db, "Ordered Product", "10.00")
	require.NoError(t, db.Create(&models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: ordered.ID,
		Quantity:  2,
		UnitPrice: ordered.Price,
	}).Error)

	racing := seedProduct(t, db, "Racing Product", "5.00")
	repo := &racingAddRepo{
		Repository: NewRepository(db),
		line: models.CartItem{
			ID:        uuid.New(),
			ProductID: racing.ID,
			Quantity:  1,
			UnitPrice: racing.Price,
		},
	}

	billing := uuid.New()
	shipping := uuid.New()
	svc, err := NewService(ServiceParams{
		Tx:           gormTxRunner{db: db},
		CheckoutRepo: repo,
		AddressRepo:  &stubAddressLoader{owned: map[uuid.UUID]uuid.UUID{billing: userID, shipping: userID}},
	})
	require.NoError(t, err)

	dto, err := svc.CreateOrder(ctx, userID, CheckoutInput{
		BillingAddressID:  billing,
		ShippingAddressID: shipping,
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, ordered.ID, dto.Items[0].ProductID)
	assert.Equal(t, "20.00", dto.TotalPrice.StringFixed(2))

	var remaining []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, racing.ID, remaining[0].ProductID)
	assert.Equal(t, 1, remaining[0].Quantity)
}
