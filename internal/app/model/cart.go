package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	VariantID *uint `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`

	// Customized lines only. UniqueKey keeps two identical designs on separate
	// lines; plain lines leave it NULL and merge by product/variant.
	UniqueKey         *string          `gorm:"size:64;uniqueIndex" json:"unique_key,omitempty"`
	Customized        bool             `gorm:"default:false" json:"customized"`
	Design            *CanonicalDesign `gorm:"type:text;serializer:json" json:"design,omitempty"`
	PrintAreaSnapshot *PrintAreaRect   `gorm:"type:text;serializer:json" json:"print_area,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
