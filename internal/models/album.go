package models

import "time"

// AlbumType distinguishes full albums from singles.
type AlbumType string

const (
	AlbumTypeAlbum  AlbumType = "album"
	AlbumTypeSingle AlbumType = "single"
)

// Valid reports whether t is one of the known album types.
func (t AlbumType) Valid() bool {
	return t == AlbumTypeAlbum || t == AlbumTypeSingle
}

// Album is a collection of tracks owned by an artist. An album starts as a draft and
// becomes immutable in name and type once released.
type Album struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_album_name_artist_id,priority:1"`
	ArtistID    string     `json:"artist_id" gorm:"type:varchar(36);not null;index;uniqueIndex:uq_album_name_artist_id,priority:2"`
	AlbumType   AlbumType  `json:"album_type" gorm:"type:varchar(16);not null"`
	TrackCount  int        `json:"track_count" gorm:"not null;default:0"`
	Released    bool       `json:"released" gorm:"not null;default:false"`
	ReleaseDate *time.Time `json:"release_date"`
	CoverKey    *string    `json:"-" gorm:"type:varchar(64)"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// HasCover reports whether a cover image has been uploaded for the album.
func (a *Album) HasCover() bool {
	return a.CoverKey != nil && *a.CoverKey != ""
}

// VisibleTo reports whether the album can be read by the user with the given id.
// Released albums are public, drafts are visible to their owner only.
func (a *Album) VisibleTo(userID string) bool {
	return a.Released || a.ArtistID == userID
}
