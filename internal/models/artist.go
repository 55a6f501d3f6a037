package models

import "time"

// Artist is the artist profile of a user. It shares its primary key with the owning User.
type Artist struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string  `json:"name" gorm:"uniqueIndex;type:varchar(255);not null"`
	Description *string `json:"description"`
	IsVerified  bool    `json:"is_verified" gorm:"not null;default:false"`
	// FollowerCount is filled by the repository on every read and never stored.
	FollowerCount int64     `json:"follower_count" gorm:"->;-:migration"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}
