package models

import "time"

// Like records that a user liked an album.
type Like struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	AlbumID   string    `json:"album_id" gorm:"primaryKey;type:varchar(36);index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

// TableName overrides the table name used by Like to `album_likes`.
func (Like) TableName() string {
	return "album_likes"
}
