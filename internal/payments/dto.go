package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/pkg/db/models"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
)

// PaymentDTO is the read shape for a payment record.
type PaymentDTO struct {
	ID        uuid.UUID           `json:"id"`
	OrderID   uuid.UUID           `json:"order_id"`
	Status    enums.PaymentStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewPaymentDTO maps a payment model to its read shape.
func NewPaymentDTO(payment models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}
