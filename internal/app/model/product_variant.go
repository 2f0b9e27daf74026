package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is one sellable variation of a product (size, color...).
// A variant may carry its own print area, which overrides the product default.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	Name          string         `gorm:"not null" json:"name"`
	Value         string         `gorm:"not null" json:"value"`
	SKU           string         `gorm:"size:64" json:"sku,omitempty"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	MockupURL     string         `json:"mockup_url,omitempty"`
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
