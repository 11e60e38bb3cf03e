package controllers

import (
	"errors"
	"strings"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PurchaseInput struct {
	ProductID  *uint  `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitCost   *int64 `json:"unit_cost"`
	SupplierID *uint  `json:"supplier_id"`
}

// CreatePurchase records a purchase against an existing product, or creates
// the product on the spot when only a name is given. Stock and the catalog
// purchase price move inside the same transaction as the purchase row.
func CreatePurchase(c *gin.Context) {
	var in PurchaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	if in.Quantity <= 0 {
		respondError(c, &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"})
		return
	}
	if in.UnitCost == nil || *in.UnitCost < 0 {
		respondError(c, &models.ValidationError{Field: "unit_cost", Msg: "must not be negative"})
		return
	}
	if in.ProductID == nil && strings.TrimSpace(in.Name) == "" {
		respondError(c, &models.ValidationError{Field: "name", Msg: "is required for a new product"})
		return
	}
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, 401, "Unauthorized", err)
		return
	}

	var purchase models.Purchase
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if in.SupplierID != nil {
			var cnt int64
			if err := tx.Model(&models.Supplier{}).Where("id = ?", *in.SupplierID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return &models.NotFoundError{Entity: "supplier", ID: *in.SupplierID}
			}
		}

		var prod *models.Product
		if in.ProductID != nil {
			p, err := lockProduct(tx, *in.ProductID)
			if err != nil {
				return err
			}
			prod = p
		} else {
			// First purchase of an unknown name creates the product; the
			// sale price starts at cost until someone edits it.
			p := models.Product{
				Name:          strings.TrimSpace(in.Name),
				PurchasePrice: *in.UnitCost,
				SalePrice:     *in.UnitCost,
				StockMinimum:  5,
				SupplierID:    in.SupplierID,
			}
			if err := tx.Create(&p).Error; err != nil {
				if isUniqueViolation(err) {
					return &models.DuplicateNameError{Entity: "product", Name: p.Name}
				}
				return err
			}
			prod = &p
		}

		purchase = models.Purchase{
			ProductID:  prod.ID,
			Quantity:   in.Quantity,
			TotalPrice: *in.UnitCost * int64(in.Quantity),
			SupplierID: in.SupplierID,
			CreatedBy:  uid,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		return applyPurchaseStock(tx, prod, in.Quantity, *in.UnitCost, purchase.ID)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := config.DB.Preload("Product").Preload("Supplier").First(&purchase, purchase.ID).Error; err != nil {
		utils.Error(c, 500, "Failed to reload purchase", err)
		return
	}
	utils.Success(c, "Purchase recorded", purchase)
}

// GetRecentPurchases lists the latest 25, newest first.
func GetRecentPurchases(c *gin.Context) {
	var purchases []models.Purchase
	if err := config.DB.Preload("Product").Preload("Supplier").
		Order("created_at DESC").Limit(25).Find(&purchases).Error; err != nil {
		utils.Error(c, 500, "Failed to list purchases", err)
		return
	}
	utils.Success(c, "Purchases", purchases)
}

type PurchaseUpdateInput struct {
	Quantity   int    `json:"quantity"`
	TotalPrice *int64 `json:"total_price"`
}

// UpdatePurchase adjusts stock by the difference between the old and new
// quantity and rewrites the purchase row, atomically.
func UpdatePurchase(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in PurchaseUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	if in.Quantity <= 0 {
		respondError(c, &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"})
		return
	}
	if in.TotalPrice == nil || *in.TotalPrice < 0 {
		respondError(c, &models.ValidationError{Field: "total_price", Msg: "must not be negative"})
		return
	}

	var purchase models.Purchase
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).First(&purchase, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "purchase", ID: id}
			}
			return err
		}
		prod, err := lockProduct(tx, purchase.ProductID)
		if err != nil {
			return err
		}
		if err := revisePurchaseStock(tx, prod, purchase.Quantity, in.Quantity, purchase.ID); err != nil {
			return err
		}
		return tx.Model(&purchase).Updates(map[string]interface{}{
			"quantity":    in.Quantity,
			"total_price": *in.TotalPrice,
		}).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := config.DB.Preload("Product").Preload("Supplier").First(&purchase, id).Error; err != nil {
		utils.Error(c, 500, "Failed to reload purchase", err)
		return
	}
	utils.Success(c, "Purchase updated", purchase)
}

// DeletePurchase reverts the purchase's stock contribution and removes the
// row.
func DeletePurchase(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.Clauses(clauseUpdateLock()).First(&purchase, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "purchase", ID: id}
			}
			return err
		}
		prod, err := lockProduct(tx, purchase.ProductID)
		if err != nil {
			return err
		}
		if err := revertPurchaseStock(tx, prod, purchase.Quantity, purchase.ID); err != nil {
			return err
		}
		return tx.Delete(&purchase).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Purchase deleted", nil)
}
