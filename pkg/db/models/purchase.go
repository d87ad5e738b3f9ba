package models

import "time"

// PurchaseRow is the persisted receipt produced by a successful checkout.
// Rows are written once and never updated; the Reference acts as the
// idempotency key.
type PurchaseRow struct {
	ID                int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Reference         string            `gorm:"column:reference;uniqueIndex;not null"`
	StoreID           *int64            `gorm:"column:store_id"`
	CustomerID        int64             `gorm:"column:customer_id;not null"`
	CashierID         *int64            `gorm:"column:cashier_id"`
	CashbackUsedCents int64             `gorm:"column:cashback_used_cents;not null;default:0"`
	TotalCents        int64             `gorm:"column:total_cents;not null"`
	PurchasedAt       time.Time         `gorm:"column:purchased_at;not null"`
	Lines             []PurchaseLineRow `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements the gorm table naming hook.
func (PurchaseRow) TableName() string {
	return "purchases"
}

// PurchaseLineRow snapshots one basket occurrence: the product's name and
// unit price as they were at purchase time.
type PurchaseLineRow struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	PurchaseID     int64  `gorm:"column:purchase_id;not null;index"`
	ProductID      int64  `gorm:"column:product_id;not null"`
	Name           string `gorm:"column:name;not null"`
	UnitPriceCents int64  `gorm:"column:unit_price_cents;not null"`
}

// TableName implements the gorm table naming hook.
func (PurchaseLineRow) TableName() string {
	return "purchase_lines"
}
