package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
)

// Order is the durable record written when a checkout session succeeds.
// Line items snapshot the cart at submission time; later catalog edits do
// not rewrite order history.
type Order struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	AddressID      *uuid.UUID          `gorm:"column:address_id;type:uuid"`
	PaymentMethod  enums.PaymentMethod `gorm:"column:payment_method;not null"`
	Status         enums.OrderStatus   `gorm:"column:status;not null;default:'placed'"`
	SubtotalPesos  int64               `gorm:"column:subtotal_pesos;not null"`
	ItemCount      int                 `gorm:"column:item_count;not null"`
	IdempotencyKey string              `gorm:"column:idempotency_key;not null;uniqueIndex"`
	Items          []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem snapshots one cart line inside a placed order.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	UnitPricePesos int64     `gorm:"column:unit_price_pesos;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	LineTotalPesos int64     `gorm:"column:line_total_pesos;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
