package models

import "time"

// User represents an account on the platform.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}
