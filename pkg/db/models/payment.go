package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/pkg/enums"
)

// Payment tracks the gateway status for exactly one order. Only the status
// column is writable after creation.
type Payment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex:payments_order_id_key"`
	Status    enums.PaymentStatus `gorm:"column:status;not null;default:'created'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
