package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures one line of an order. OrderedPrice is the price at the
// moment of checkout and must never be recomputed from the live product.
// The product FK cascades on delete, matching the historical schema.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	OrderedPrice decimal.Decimal `gorm:"column:ordered_price;type:numeric(8,2);not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	Product      *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalPrice is the derived line total: ordered price times quantity.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.OrderedPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
