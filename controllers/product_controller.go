package controllers

import (
	"errors"
	"strings"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name          string `json:"name"`
	PurchasePrice *int64 `json:"purchase_price"`
	SalePrice     *int64 `json:"sale_price"`
	Stock         *int   `json:"stock"`
	StockMinimum  *int   `json:"stock_minimum"`
	SupplierID    *uint  `json:"supplier_id"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Msg: "is required"}
	}
	if in.PurchasePrice != nil && *in.PurchasePrice < 0 {
		return &models.ValidationError{Field: "purchase_price", Msg: "must not be negative"}
	}
	if in.SalePrice != nil && *in.SalePrice < 0 {
		return &models.ValidationError{Field: "sale_price", Msg: "must not be negative"}
	}
	if in.Stock != nil && *in.Stock < 0 {
		return &models.ValidationError{Field: "stock", Msg: "must not be negative"}
	}
	if in.StockMinimum != nil && *in.StockMinimum < 0 {
		return &models.ValidationError{Field: "stock_minimum", Msg: "must not be negative"}
	}
	return nil
}

// isUniqueViolation spots the postgres unique constraint SQLSTATE so name
// collisions surface as DuplicateNameError instead of a bare 500.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(c, err)
		return
	}

	product := models.Product{
		Name:         strings.TrimSpace(in.Name),
		StockMinimum: 5,
		SupplierID:   in.SupplierID,
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.StockMinimum != nil {
		product.StockMinimum = *in.StockMinimum
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if in.SupplierID != nil {
			var cnt int64
			if err := tx.Model(&models.Supplier{}).Where("id = ?", *in.SupplierID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return &models.NotFoundError{Entity: "supplier", ID: *in.SupplierID}
			}
		}
		if err := tx.Create(&product).Error; err != nil {
			if isUniqueViolation(err) {
				return &models.DuplicateNameError{Entity: "product", Name: product.Name}
			}
			return err
		}
		if in.Stock != nil && *in.Stock > 0 {
			return correctStock(tx, &product, *in.Stock)
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Product created", product)
}

func GetAllProducts(c *gin.Context) {
	q := config.DB.Preload("Supplier").Order("name ASC")
	if c.Query("low_stock") == "1" {
		q = q.Where("stock <= stock_minimum")
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		utils.Error(c, 500, "Failed to list products", err)
		return
	}
	utils.Success(c, "Products", products)
}

func GetProductByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var product models.Product
	if err := config.DB.Preload("Supplier").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &models.NotFoundError{Entity: "product", ID: id})
			return
		}
		utils.Error(c, 500, "Failed to load product", err)
		return
	}
	utils.Success(c, "Product", product)
}

// UpdateProduct edits the catalog fields; a changed stock value is an
// inventory correction and leaves a movement row behind.
func UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(c, err)
		return
	}

	var product models.Product
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockProduct(tx, id)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"name": strings.TrimSpace(in.Name),
		}
		if in.PurchasePrice != nil {
			updates["purchase_price"] = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			updates["sale_price"] = *in.SalePrice
		}
		if in.StockMinimum != nil {
			updates["stock_minimum"] = *in.StockMinimum
		}
		if in.SupplierID != nil {
			var cnt int64
			if err := tx.Model(&models.Supplier{}).Where("id = ?", *in.SupplierID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return &models.NotFoundError{Entity: "supplier", ID: *in.SupplierID}
			}
			updates["supplier_id"] = *in.SupplierID
		}
		if err := tx.Model(p).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return &models.DuplicateNameError{Entity: "product", Name: in.Name}
			}
			return err
		}
		if in.Stock != nil {
			if err := correctStock(tx, p, *in.Stock); err != nil {
				return err
			}
		}
		product = *p
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := config.DB.Preload("Supplier").First(&product, id).Error; err != nil {
		utils.Error(c, 500, "Failed to reload product", err)
		return
	}
	utils.Success(c, "Product updated", product)
}

// DeleteProduct cascades to the product's purchases and sale lines rather
// than leaving dangling references.
func DeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockProduct(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.SaleLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.StockMovement{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Product deleted", nil)
}
