package models

import "time"

// ProductRow is the persisted form of a catalog product, keyed by its unique
// barcode.
type ProductRow struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Barcode    string    `gorm:"column:barcode;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;not null"`
	PriceCents int64     `gorm:"column:price_cents;not null"`
	Quantity   int64     `gorm:"column:quantity;not null;default:0"`
	CategoryID *int64    `gorm:"column:category_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName implements the gorm table naming hook.
func (ProductRow) TableName() string {
	return "products"
}
