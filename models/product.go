package models

import "time"

// Product prices are integer-scaled currency (whole pesos, no fractional
// digits), so all arithmetic stays exact.
type Product struct {
	ID            uint      `gorm:"primaryKey"           json:"id"`
	Name          string    `gorm:"uniqueIndex;size:100" json:"name"`
	PurchasePrice int64     `json:"purchase_price"`
	SalePrice     int64     `json:"sale_price"`
	Stock         int       `json:"stock"`
	StockMinimum  int       `gorm:"default:5" json:"stock_minimum"`
	SupplierID    *uint     `json:"supplier_id"`
	Supplier      *Supplier `gorm:"constraint:OnDelete:SET NULL" json:"supplier,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LowStock reports whether the product is at or below its minimum level.
func (p *Product) LowStock() bool {
	return p.Stock <= p.StockMinimum
}
