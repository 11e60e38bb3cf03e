package controllers

import (
	"time"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
)

type reportRow struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Total     int64  `json:"total"`
}

// DailyReport aggregates one calendar day of sales and purchases per
// product. Sales totals come from the unit price snapshotted on each line
// at confirmation, never the current catalog price. Grand totals are summed
// in Go over the returned rows, so the per-product breakdown always adds up
// to them exactly.
//
// GET /reports/daily?date=YYYY-MM-DD (default: today)
func DailyReport(c *gin.Context) {
	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		respondError(c, &models.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"})
		return
	}

	salesRows := make([]reportRow, 0)
	if err := config.DB.
		Table("sale_lines").
		Select(`
			sale_lines.product_id,
			products.name,
			SUM(sale_lines.quantity) AS quantity,
			SUM(sale_lines.quantity * sale_lines.unit_price) AS total
		`).
		Joins("INNER JOIN sales ON sales.id = sale_lines.sale_id").
		Joins("INNER JOIN products ON products.id = sale_lines.product_id").
		Where("DATE(sales.created_at) = ?", dateStr).
		Group("sale_lines.product_id, products.name").
		Order("total DESC").
		Scan(&salesRows).Error; err != nil {
		utils.Error(c, 500, "Failed to aggregate sales", err)
		return
	}

	purchaseRows := make([]reportRow, 0)
	if err := config.DB.
		Table("purchases").
		Select(`
			purchases.product_id,
			products.name,
			SUM(purchases.quantity) AS quantity,
			SUM(purchases.total_price) AS total
		`).
		Joins("INNER JOIN products ON products.id = purchases.product_id").
		Where("DATE(purchases.created_at) = ?", dateStr).
		Group("purchases.product_id, products.name").
		Order("total DESC").
		Scan(&purchaseRows).Error; err != nil {
		utils.Error(c, 500, "Failed to aggregate purchases", err)
		return
	}

	var totalSales, totalPurchases int64
	for _, r := range salesRows {
		totalSales += r.Total
	}
	for _, r := range purchaseRows {
		totalPurchases += r.Total
	}

	utils.Success(c, "Daily report", gin.H{
		"date":                 dateStr,
		"total_sales":          totalSales,
		"total_purchases":      totalPurchases,
		"sales_by_product":     salesRows,
		"purchases_by_product": purchaseRows,
	})
}
