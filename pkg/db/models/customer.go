package models

import "time"

// CustomerRow is the persisted form of a customer, keyed by their unique
// phone number.
type CustomerRow struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string    `gorm:"column:name;not null"`
	Surname       string    `gorm:"column:surname;not null"`
	Phone         string    `gorm:"column:phone;uniqueIndex;not null"`
	CashbackCents int64     `gorm:"column:cashback_cents;not null;default:0"`
	Percent       int       `gorm:"column:percent;not null;default:1"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName implements the gorm table naming hook.
func (CustomerRow) TableName() string {
	return "customers"
}
