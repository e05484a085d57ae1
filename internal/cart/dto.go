package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
)

// CartItemDTO is the read shape for a single cart line.
type CartItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CartDTO is the read shape for a cart, including derived totals.
type CartDTO struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Items      []CartItemDTO   `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewCartItemDTO maps a cart item model, deriving the line total.
func NewCartItemDTO(item models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice(),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
	}
	return dto
}

// NewCartDTO maps a cart model, deriving the cart total from its items.
func NewCartDTO(cart models.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		items = append(items, NewCartItemDTO(item))
		total = total.Add(item.TotalPrice())
	}
	return CartDTO{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: total,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
