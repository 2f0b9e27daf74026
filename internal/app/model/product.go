package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Customizable  bool           `gorm:"default:false" json:"customizable"`
	MockupURL     string         `json:"mockup_url"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variants   []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	PrintAreas []PrintArea      `gorm:"foreignKey:ProductID" json:"print_areas,omitempty"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
