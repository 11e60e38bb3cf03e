package config

import (
	"os"

	"github.com/MOON-roa-png/BodegaMati/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin makes sure at least one admin account exists so the role-gated
// endpoints are reachable on a fresh database. Idempotent.
func SeedAdmin() {
	var cnt int64
	if err := DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&cnt).Error; err != nil {
		Log.Errorf("admin seed check failed: %v", err)
		return
	}
	if cnt > 0 {
		return
	}

	username := envOr("ADMIN_USERNAME", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		Log.Warn("no admin user and ADMIN_PASSWORD unset, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		Log.Errorf("admin seed hash failed: %v", err)
		return
	}
	if err := DB.Create(&models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}).Error; err != nil {
		Log.Errorf("admin seed insert failed: %v", err)
		return
	}
	Log.Infow("seeded initial admin user", "username", username)
}
