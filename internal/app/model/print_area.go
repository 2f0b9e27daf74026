package model

import "time"

// DefaultPrintAreaName is used when a merchant does not name the area.
const DefaultPrintAreaName = "default"

// PrintArea is a stored printable region. VariantID 0 marks the product-level
// default; (product_id, variant_id, name) is unique so Set overwrites in place.
type PrintArea struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_print_area_scope,priority:1" json:"product_id"`
	VariantID uint      `gorm:"not null;default:0;uniqueIndex:idx_print_area_scope,priority:2" json:"variant_id"`
	Name      string    `gorm:"size:64;not null;default:'default';uniqueIndex:idx_print_area_scope,priority:3" json:"name"`
	X         float64   `gorm:"not null" json:"x"`
	Y         float64   `gorm:"not null" json:"y"`
	W         float64   `gorm:"not null" json:"w"`
	H         float64   `gorm:"not null" json:"h"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PrintArea) TableName() string {
	return "print_areas"
}

// Rect returns the stored region by value.
func (p PrintArea) Rect() PrintAreaRect {
	return PrintAreaRect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// PrintAreaInput is a print area as submitted by an admin; nil means the field was omitted.
type PrintAreaInput struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	W *float64 `json:"w"`
	H *float64 `json:"h"`
}
