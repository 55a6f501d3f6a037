package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories sharing one database and hands out transactions.
// Every repository method accepts the transaction it should run in; a nil
// transaction runs against the base handle.
type Store struct {
	db *gorm.DB

	Users   UserRepository
	Artists ArtistRepository
	Follows FollowRepository
	Albums  AlbumRepository
	Likes   LikeRepository
}

// NewStore creates a Store backed by GORM repositories.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		Users:   NewGORMUserRepository(db),
		Artists: NewGORMArtistRepository(db),
		Follows: NewGORMFollowRepository(db),
		Albums:  NewGORMAlbumRepository(db),
		Likes:   NewGORMLikeRepository(db),
	}
}

// Transaction runs fn inside a single database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
