package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
)

// OrderItemDTO is the read shape for one order line. OrderedPrice is the
// checkout-time snapshot; the line total is derived from it, never from the
// live product price.
type OrderItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	OrderedPrice decimal.Decimal `json:"ordered_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderDTO is the read shape for an order with derived totals.
type OrderDTO struct {
	ID                uuid.UUID            `json:"id"`
	UserID            uuid.UUID            `json:"user_id"`
	BillingAddressID  uuid.UUID            `json:"billing_address_id"`
	ShippingAddressID uuid.UUID            `json:"shipping_address_id"`
	Delivery          enums.DeliveryStatus `json:"delivery"`
	Items             []OrderItemDTO       `json:"items"`
	TotalPrice        decimal.Decimal      `json:"total_price"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// OrderPageDTO wraps a page of orders with the cursor for the next page.
type OrderPageDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderItemDTO maps an order item model, deriving the line total.
func NewOrderItemDTO(item models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:           item.ID,
		ProductID:    item.ProductID,
		OrderedPrice: item.OrderedPrice,
		Quantity:     item.Quantity,
		TotalPrice:   item.TotalPrice(),
		CreatedAt:    item.CreatedAt,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
	}
	return dto
}

// NewOrderDTO maps an order model, deriving the order total from its items.
func NewOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, NewOrderItemDTO(item))
	}
	return OrderDTO{
		ID:                order.ID,
		UserID:            order.UserID,
		BillingAddressID:  order.BillingAddressID,
		ShippingAddressID: order.ShippingAddressID,
		Delivery:          order.Delivery,
		Items:             items,
		TotalPrice:        order.TotalPrice(),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}
