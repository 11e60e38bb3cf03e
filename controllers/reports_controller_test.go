package controllers_test

import (
	"testing"

	"github.com/MOON-roa-png/BodegaMati/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyReportAggregates(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	admin := newClient(t, r, models.RoleAdmin)

	rice := seedProduct(t, "Rice", 500, 20)
	beans := seedProduct(t, "Beans", 300, 20)

	// Two purchases today.
	mustStatus(t, employee.do("POST", "/api/purchases", map[string]interface{}{
		"product_id": rice.ID, "quantity": 10, "unit_cost": 100,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/purchases", map[string]interface{}{
		"product_id": beans.ID, "quantity": 5, "unit_cost": 60,
	}), 200)

	// One confirmed sale today: 2x Rice @500 + 3x Beans @300.
	mustStatus(t, employee.do("POST", "/api/sales/cart", map[string]interface{}{
		"product_id": rice.ID, "quantity": 2,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/cart", map[string]interface{}{
		"product_id": beans.ID, "quantity": 3,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/confirm", nil), 200)

	w := admin.do("GET", "/api/reports/daily", nil)
	mustStatus(t, w, 200)
	report := decodeData(t, w)

	assert.Equal(t, float64(2*500+3*300), report["total_sales"])
	assert.Equal(t, float64(10*100+5*60), report["total_purchases"])

	salesRows := report["sales_by_product"].([]interface{})
	require.Len(t, salesRows, 2)
	var sumSales float64
	for _, row := range salesRows {
		sumSales += row.(map[string]interface{})["total"].(float64)
	}
	assert.Equal(t, report["total_sales"], sumSales)

	purchaseRows := report["purchases_by_product"].([]interface{})
	require.Len(t, purchaseRows, 2)
	var sumPurchases float64
	for _, row := range purchaseRows {
		sumPurchases += row.(map[string]interface{})["total"].(float64)
	}
	assert.Equal(t, report["total_purchases"], sumPurchases)
}

func TestDailyReportIsIdempotent(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	admin := newClient(t, r, models.RoleAdmin)

	rice := seedProduct(t, "Rice", 500, 20)
	mustStatus(t, employee.do("POST", "/api/purchases", map[string]interface{}{
		"product_id": rice.ID, "quantity": 4, "unit_cost": 100,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/cart", map[string]interface{}{
		"product_id": rice.ID, "quantity": 1,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/confirm", nil), 200)

	first := admin.do("GET", "/api/reports/daily", nil)
	mustStatus(t, first, 200)
	second := admin.do("GET", "/api/reports/daily", nil)
	mustStatus(t, second, 200)

	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestDailyReportEmptyDay(t *testing.T) {
	r := setupTest(t)
	admin := newClient(t, r, models.RoleAdmin)

	w := admin.do("GET", "/api/reports/daily?date=2001-01-01", nil)
	mustStatus(t, w, 200)
	report := decodeData(t, w)
	assert.Equal(t, float64(0), report["total_sales"])
	assert.Equal(t, float64(0), report["total_purchases"])
	assert.Empty(t, report["sales_by_product"])
	assert.Empty(t, report["purchases_by_product"])
}

func TestDailyReportValidatesDate(t *testing.T) {
	r := setupTest(t)
	admin := newClient(t, r, models.RoleAdmin)

	mustStatus(t, admin.do("GET", "/api/reports/daily?date=01-01-2024", nil), 400)
}

func TestDailyReportRequiresAdmin(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)

	mustStatus(t, employee.do("GET", "/api/reports/daily", nil), 403)
}

// Sales report rows come from the unit price snapshotted on each line, so
// later catalog price changes leave history alone.
func TestDailyReportUsesTransactionTimePrices(t *testing.T) {
	r := setupTest(t)
	employee := newClient(t, r, models.RoleEmployee)
	admin := newClient(t, r, models.RoleAdmin)

	rice := seedProduct(t, "Rice", 500, 20)
	mustStatus(t, employee.do("POST", "/api/sales/cart", map[string]interface{}{
		"product_id": rice.ID, "quantity": 2,
	}), 200)
	mustStatus(t, employee.do("POST", "/api/sales/confirm", nil), 200)

	mustStatus(t, admin.do("PUT", "/api/products/1", map[string]interface{}{
		"name": "Rice", "sale_price": 9999,
	}), 200)

	w := admin.do("GET", "/api/reports/daily", nil)
	mustStatus(t, w, 200)
	report := decodeData(t, w)
	assert.Equal(t, float64(1000), report["total_sales"])
}
