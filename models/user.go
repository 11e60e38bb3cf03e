package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID           uint      `gorm:"primaryKey"           json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	PasswordHash string    `gorm:"size:255"             json:"-"`
	Role         string    `gorm:"size:10;default:employee" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
