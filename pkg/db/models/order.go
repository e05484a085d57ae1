package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoussa/shopzone-backend/pkg/enums"
)

// Order is the immutable-at-creation snapshot of a purchase. Billing and
// shipping addresses are RESTRICT-protected so deleting an address cannot
// erase order history. TotalPrice is always derived from items.
type Order struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	BillingAddressID  uuid.UUID            `gorm:"column:billing_address_id;type:uuid;not null"`
	ShippingAddressID uuid.UUID            `gorm:"column:shipping_address_id;type:uuid;not null"`
	Delivery          enums.DeliveryStatus `gorm:"column:delivery;not null;default:'pending'"`
	Items             []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	BillingAddress    *Address             `gorm:"foreignKey:BillingAddressID;constraint:OnDelete:RESTRICT"`
	ShippingAddress   *Address             `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:RESTRICT"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalPrice sums the items' derived totals.
func (o Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}
