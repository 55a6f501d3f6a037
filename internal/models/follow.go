package models

import "time"

// Follow is a directed edge from a user to an artist.
type Follow struct {
	FollowerID string    `json:"follower_id" gorm:"primaryKey;type:varchar(36)"`
	ArtistID   string    `json:"artist_id" gorm:"primaryKey;type:varchar(36);index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

// TableName overrides the table name used by Follow to `follows`.
func (Follow) TableName() string {
	return "follows"
}
