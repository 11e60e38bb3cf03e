package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB() {
	// Hosted deployments usually hand us a single DATABASE_URL.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DB_URL")
	}

	if dbURL == "" {
		host := envOr("DB_HOST", "localhost")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "bodega")
		port := envOr("DB_PORT", "5432")
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, password, dbname, port,
		)
	} else {
		// Managed postgres tends to require TLS; add it when absent.
		if !strings.Contains(dbURL, "sslmode=") {
			dbURL = dbURL + urlSep(dbURL) + "sslmode=require"
		}
		if !strings.Contains(dbURL, "search_path=") {
			dbURL = dbURL + urlSep(dbURL) + "search_path=public"
		}
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		Log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		Log.Warnf("failed to set timezone UTC: %v", err)
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	Log.Infow("database connected", "db", dbName, "user", currentUser)

	DB = db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func urlSep(url string) string {
	if strings.Contains(url, "?") {
		return "&"
	}
	return "?"
}
