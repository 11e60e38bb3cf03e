package models

import "time"

// Reasons recorded on stock movements.
const (
	MoveReasonPurchase       = "purchase"
	MoveReasonPurchaseEdit   = "purchase_edit"
	MoveReasonPurchaseDelete = "purchase_delete"
	MoveReasonSale           = "sale"
	MoveReasonCorrection     = "correction"
)

// StockMovement is an append-only audit row written alongside every stock
// change. RefID points at the purchase or sale that caused it (0 for manual
// corrections).
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	Delta     int       `json:"delta"`
	Reason    string    `gorm:"size:20" json:"reason"`
	RefID     uint      `json:"ref_id"`
	CreatedAt time.Time `json:"created_at"`
}
