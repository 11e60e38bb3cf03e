package controllers

import (
	"errors"

	"github.com/MOON-roa-png/BodegaMati/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The stock ledger: every stock change goes through one of the helpers
// below, inside the caller's transaction, with the product row locked. Each
// helper either fully applies its delta (and records a StockMovement) or
// fails before touching anything.

func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// lockProduct fetches the product row FOR UPDATE so the read-check-write
// that follows is serialized against concurrent requests.
func lockProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := tx.Clauses(clauseUpdateLock()).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "product", ID: id}
		}
		return nil, err
	}
	return &p, nil
}

// recordMovement appends the audit row and keeps the in-memory product in
// step with the row just written.
func recordMovement(tx *gorm.DB, p *models.Product, newStock int, reason string, refID uint) error {
	m := models.StockMovement{
		ProductID: p.ID,
		OldStock:  p.Stock,
		NewStock:  newStock,
		Delta:     newStock - p.Stock,
		Reason:    reason,
		RefID:     refID,
	}
	p.Stock = newStock
	return tx.Create(&m).Error
}

// applyPurchaseStock adds a recorded purchase to the product: stock goes up
// by quantity and the catalog purchase price is overwritten with the new
// unit cost.
func applyPurchaseStock(tx *gorm.DB, p *models.Product, quantity int, unitCost int64, refID uint) error {
	if quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	if unitCost < 0 {
		return &models.ValidationError{Field: "unit_cost", Msg: "must not be negative"}
	}
	if err := tx.Model(p).UpdateColumns(map[string]interface{}{
		"stock":          gorm.Expr("stock + ?", quantity),
		"purchase_price": unitCost,
	}).Error; err != nil {
		return err
	}
	p.PurchasePrice = unitCost
	return recordMovement(tx, p, p.Stock+quantity, models.MoveReasonPurchase, refID)
}

// revisePurchaseStock moves stock by the difference between the edited and
// the original quantity. The delta may be negative and is applied without a
// floor check, matching how purchases have always behaved here; only sales
// refuse to drive stock below zero.
func revisePurchaseStock(tx *gorm.DB, p *models.Product, oldQuantity, newQuantity int, refID uint) error {
	if newQuantity <= 0 {
		return &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	delta := newQuantity - oldQuantity
	if delta == 0 {
		return nil
	}
	if err := tx.Model(p).UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		return err
	}
	return recordMovement(tx, p, p.Stock+delta, models.MoveReasonPurchaseEdit, refID)
}

// revertPurchaseStock undoes a purchase when it is deleted.
func revertPurchaseStock(tx *gorm.DB, p *models.Product, quantity int, refID uint) error {
	if err := tx.Model(p).UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error; err != nil {
		return err
	}
	return recordMovement(tx, p, p.Stock-quantity, models.MoveReasonPurchaseDelete, refID)
}

// applySaleStock decrements stock for one confirmed sale line. The caller
// must already hold the row lock; the sufficiency check relies on it.
func applySaleStock(tx *gorm.DB, p *models.Product, quantity int, refID uint) error {
	if quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	if quantity > p.Stock {
		return &models.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   quantity,
		}
	}
	if err := tx.Model(p).UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error; err != nil {
		return err
	}
	return recordMovement(tx, p, p.Stock-quantity, models.MoveReasonSale, refID)
}

// correctStock sets stock to an explicit value (manual inventory edit).
func correctStock(tx *gorm.DB, p *models.Product, newStock int) error {
	if newStock < 0 {
		return &models.ValidationError{Field: "stock", Msg: "must not be negative"}
	}
	if newStock == p.Stock {
		return nil
	}
	if err := tx.Model(p).UpdateColumn("stock", newStock).Error; err != nil {
		return err
	}
	return recordMovement(tx, p, newStock, models.MoveReasonCorrection, 0)
}
