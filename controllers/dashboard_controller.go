package controllers

import (
	"time"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
)

func Dashboard(c *gin.Context) {
	var totalProducts, lowStock int64
	if err := config.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		utils.Error(c, 500, "Failed to load dashboard", err)
		return
	}
	if err := config.DB.Model(&models.Product{}).
		Where("stock <= stock_minimum").Count(&lowStock).Error; err != nil {
		utils.Error(c, 500, "Failed to load dashboard", err)
		return
	}

	var todaySales int64
	if err := config.DB.Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("DATE(created_at) = ?", time.Now().Format("2006-01-02")).
		Scan(&todaySales).Error; err != nil {
		utils.Error(c, 500, "Failed to load dashboard", err)
		return
	}

	utils.Success(c, "Dashboard", gin.H{
		"total_products":    totalProducts,
		"low_stock_count":   lowStock,
		"today_sales_total": todaySales,
	})
}
