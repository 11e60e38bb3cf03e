package main

import (
	"os"

	"github.com/MOON-roa-png/BodegaMati/cart"
	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/controllers"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/routes"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	config.InitLogger()
	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.Purchase{},
		&models.Sale{},
		&models.SaleLine{},
		&models.StockMovement{},
	); err != nil {
		config.Log.Fatalf("auto-migrate failed: %v", err)
	}

	config.SeedAdmin()

	config.InitRedis()
	if config.RedisClient != nil {
		controllers.Carts = cart.NewRedisStore(config.RedisClient)
	}

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Bodega API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalf("server stopped: %v", err)
	}
}
