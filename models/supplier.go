package models

import "time"

type Supplier struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Contact   *string   `gorm:"size:100"             json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
