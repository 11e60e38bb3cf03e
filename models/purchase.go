package models

import "time"

type Purchase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	Product    Product   `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice int64     `gorm:"not null" json:"total_price"`
	SupplierID *uint     `json:"supplier_id"`
	Supplier   *Supplier `gorm:"constraint:OnDelete:SET NULL" json:"supplier,omitempty"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}
