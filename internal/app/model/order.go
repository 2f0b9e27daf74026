package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPrinting  OrderStatus = "printing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ErrOrderItemImmutable is returned by any attempt to update a stored order item.
var ErrOrderItemImmutable = errors.New("order items are immutable")

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPrinting, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Status    OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ItemCount int            `gorm:"not null;default:0" json:"item_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is written once at checkout. Design carries the full canonical
// record; PrintType/FabricType/Color/AttachmentIDs repeat parts of it as
// plain columns for listing and search.
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	VariantID *uint `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int   `gorm:"not null" json:"quantity"`

	IsCustomized      bool             `gorm:"not null;default:false;index" json:"is_customized"`
	PrintType         string           `gorm:"size:100;index" json:"print_type,omitempty"`
	FabricType        string           `gorm:"size:100;index" json:"fabric_type,omitempty"`
	Color             string           `gorm:"size:100;index" json:"color,omitempty"`
	AttachmentIDs     []uint64         `gorm:"type:text;serializer:json" json:"attachment_ids,omitempty"`
	Design            *CanonicalDesign `gorm:"type:text;serializer:json" json:"design,omitempty"`
	PrintAreaSnapshot *PrintAreaRect   `gorm:"type:text;serializer:json" json:"print_area,omitempty"`
	UniqueKey         string           `gorm:"size:64" json:"unique_key,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeUpdate keeps order history stable.
func (i *OrderItem) BeforeUpdate(tx *gorm.DB) error {
	return ErrOrderItemImmutable
}
