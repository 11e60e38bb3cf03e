package controllers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDuplicateName(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)

	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "Rice", "sale_price": 500,
	}), 200)
	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "Rice", "sale_price": 700,
	}), 409)
}

func TestCreateProductValidation(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)

	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "", "sale_price": 500,
	}), 400)
	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "Rice", "sale_price": -1,
	}), 400)
	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "Rice", "stock": -3,
	}), 400)
}

func TestCreateProductWithInitialStockRecordsCorrection(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)

	mustStatus(t, cl.do("POST", "/api/products", map[string]interface{}{
		"name": "Rice", "sale_price": 500, "stock": 12,
	}), 200)

	var p models.Product
	require.NoError(t, config.DB.Where("name = ?", "Rice").First(&p).Error)
	assert.Equal(t, 12, p.Stock)

	var move models.StockMovement
	require.NoError(t, config.DB.Where("product_id = ?", p.ID).First(&move).Error)
	assert.Equal(t, models.MoveReasonCorrection, move.Reason)
	assert.Equal(t, 12, move.Delta)
}

func TestUpdateProductStockIsACorrection(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)
	p := seedProduct(t, "Rice", 500, 10)

	mustStatus(t, cl.do("PUT", fmt.Sprintf("/api/products/%d", p.ID), map[string]interface{}{
		"name": "Rice", "stock": 7,
	}), 200)
	assert.Equal(t, 7, reloadProduct(t, p.ID).Stock)

	var move models.StockMovement
	require.NoError(t, config.DB.Where("product_id = ? AND reason = ?",
		p.ID, models.MoveReasonCorrection).First(&move).Error)
	assert.Equal(t, -3, move.Delta)
}

func TestLowStockFilter(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)

	low := seedProduct(t, "Beans", 300, 2) // below the default minimum of 5
	seedProduct(t, "Rice", 500, 50)

	w := cl.do("GET", "/api/products?low_stock=1", nil)
	mustStatus(t, w, 200)
	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, low.ID, resp.Data[0].ID)
}

func TestDeleteSupplierKeepsProducts(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	admin := newClient(t, r, models.RoleAdmin)

	w := employee.do("POST", "/api/suppliers", map[string]interface{}{
		"name": "Acme", "contact": "acme@example.com",
	})
	mustStatus(t, w, 200)
	var sup models.Supplier
	require.NoError(t, config.DB.Where("name = ?", "Acme").First(&sup).Error)

	p := seedProduct(t, "Rice", 500, 10)
	require.NoError(t, config.DB.Model(&models.Product{}).
		Where("id = ?", p.ID).Update("supplier_id", sup.ID).Error)

	mustStatus(t, admin.do("DELETE", fmt.Sprintf("/api/suppliers/%d", sup.ID), nil), 200)

	got := reloadProduct(t, p.ID)
	assert.Nil(t, got.SupplierID)
}

func TestDuplicateSupplierName(t *testing.T) {
	r := setupTest(t)
	cl := newClient(t, r, models.RoleEmployee)

	mustStatus(t, cl.do("POST", "/api/suppliers", map[string]interface{}{"name": "Acme"}), 200)
	mustStatus(t, cl.do("POST", "/api/suppliers", map[string]interface{}{"name": "Acme"}), 409)
}

func TestDeleteProductCascades(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	admin := newClient(t, r, models.RoleAdmin)

	p := seedProduct(t, "Rice", 500, 10)
	mustStatus(t, employee.do("POST", "/api/purchases", map[string]interface{}{
		"product_id": p.ID, "quantity": 5, "unit_cost": 100,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/cart", map[string]interface{}{
		"product_id": p.ID, "quantity": 1,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/confirm", nil), 200)

	mustStatus(t, admin.do("DELETE", fmt.Sprintf("/api/products/%d", p.ID), nil), 200)

	var purchases, lines int64
	config.DB.Model(&models.Purchase{}).Where("product_id = ?", p.ID).Count(&purchases)
	config.DB.Model(&models.SaleLine{}).Where("product_id = ?", p.ID).Count(&lines)
	assert.Zero(t, purchases)
	assert.Zero(t, lines)
}

func TestProductDeleteRequiresAdmin(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	p := seedProduct(t, "Rice", 500, 10)

	mustStatus(t, employee.do("DELETE", fmt.Sprintf("/api/products/%d", p.ID), nil), 403)
}
