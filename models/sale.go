package models

import "time"

type SaleKind string

const (
	SaleRetail    SaleKind = "retail"
	SaleWholesale SaleKind = "wholesale"
)

// Sale is created only by sale confirmation and is immutable afterwards.
// Total equals the sum of its line subtotals at confirmation time.
type Sale struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Total     int64      `json:"total"`
	Kind      SaleKind   `gorm:"size:10" json:"kind"`
	CreatedBy uint       `json:"created_by"`
	Lines     []SaleLine `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
}

// SaleLine carries the unit price snapshotted from the cart, not the
// catalog price at read time.
type SaleLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    uint    `gorm:"index;not null" json:"sale_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice int64   `gorm:"not null" json:"unit_price"`
}
