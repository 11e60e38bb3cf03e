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

type SupplierInput struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
}

func CreateSupplier(c *gin.Context) {
	var in SupplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		respondError(c, &models.ValidationError{Field: "name", Msg: "is required"})
		return
	}

	supplier := models.Supplier{Name: name, Contact: in.Contact}
	if err := config.DB.Create(&supplier).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, &models.DuplicateNameError{Entity: "supplier", Name: name})
			return
		}
		utils.Error(c, 500, "Failed to create supplier", err)
		return
	}
	utils.Success(c, "Supplier created", supplier)
}

func GetAllSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
		utils.Error(c, 500, "Failed to list suppliers", err)
		return
	}
	utils.Success(c, "Suppliers", suppliers)
}

func GetSupplierByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var supplier models.Supplier
	if err := config.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &models.NotFoundError{Entity: "supplier", ID: id})
			return
		}
		utils.Error(c, 500, "Failed to load supplier", err)
		return
	}
	utils.Success(c, "Supplier", supplier)
}

func UpdateSupplier(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in SupplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		respondError(c, &models.ValidationError{Field: "name", Msg: "is required"})
		return
	}

	var supplier models.Supplier
	if err := config.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &models.NotFoundError{Entity: "supplier", ID: id})
			return
		}
		utils.Error(c, 500, "Failed to load supplier", err)
		return
	}

	updates := map[string]interface{}{"name": name, "contact": in.Contact}
	if err := config.DB.Model(&supplier).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, &models.DuplicateNameError{Entity: "supplier", Name: name})
			return
		}
		utils.Error(c, 500, "Failed to update supplier", err)
		return
	}
	utils.Success(c, "Supplier updated", supplier)
}

// DeleteSupplier clears the weak references first: products and purchases
// keep existing with an empty supplier.
func DeleteSupplier(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "supplier", ID: id}
			}
			return err
		}
		if err := tx.Model(&models.Product{}).Where("supplier_id = ?", id).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Purchase{}).Where("supplier_id = ?", id).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&supplier).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Supplier deleted", nil)
}
