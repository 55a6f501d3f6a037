package services

import (
	"context"
	"errors"
	"sync"

	"sonority/internal/models"
	"sonority/internal/repositories"

	"gorm.io/gorm"
)

// AccountService handles registration, login and profile management of users.
type AccountService struct {
	base
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService.
func NewAccountService(deps Dependencies, hasher PasswordHasher) *AccountService {
	return &AccountService{
		base:   newBase(deps, "AccountService"),
		hasher: hasher,
	}
}

// Register creates a new account. The email is checked before the username.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		taken, err := s.store.Users.EmailExists(ctx, tx, req.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailInUse
		}
		taken, err = s.store.Users.UsernameExists(ctx, tx, req.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameInUse
		}

		now := s.now()
		u := &models.User{
			Email:        req.Email,
			Username:     req.Username,
			FullName:     req.FullName,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.store.Users.Create(ctx, tx, u); err != nil {
			return userConflict(err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)
	s.emit(EventUserRegistered, map[string]string{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong passwords
// fail with the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		u, err := s.store.Users.GetByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if errors.Is(err, repositories.ErrNotFound) {
		// Spend the same work as a real comparison.
		s.hasher.Verify(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("sonority-placeholder-password")
	})
	return s.dummyHash
}

// GetUser retrieves a user by ID.
func (s *AccountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		u, err := s.store.Users.GetByID(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		user = u
		return nil
	})
	return user, err
}

// UpdateProfile applies a partial profile update. Every provided field is checked
// for uniqueness before anything is written; a value equal to the user's own
// current one never conflicts. An empty request returns the user unchanged.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		u, err := s.store.Users.GetByID(ctx, tx, userID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		user = u
		if req.Empty() {
			return nil
		}

		if req.Email != nil && *req.Email != u.Email {
			taken, err := s.store.Users.EmailExists(ctx, tx, *req.Email)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailInUse
			}
		}
		if req.Username != nil && *req.Username != u.Username {
			taken, err := s.store.Users.UsernameExists(ctx, tx, *req.Username)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameInUse
			}
		}

		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		u.UpdatedAt = s.now()
		return userConflict(s.store.Users.Update(ctx, tx, u))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the user's password after verifying the old one.
func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == newPassword {
		return ErrSamePassword
	}
	return s.store.Transaction(ctx, func(tx *gorm.DB) error {
		u, err := s.store.Users.GetByID(ctx, tx, userID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if !s.hasher.Verify(u.PasswordHash, oldPassword) {
			return ErrIncorrectPassword
		}
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		u.UpdatedAt = s.now()
		return s.store.Users.Update(ctx, tx, u)
	})
}

// DeleteAccount removes the user together with everything that depends on it:
// the likes and follows it made, and its artist profile with that profile's
// albums, the likes on them and the follows pointing at it.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	var covers []string
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.Users.GetByID(ctx, tx, userID); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if err := s.store.Likes.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.store.Follows.DeleteByFollower(ctx, tx, userID); err != nil {
			return err
		}

		isArtist, err := s.store.Artists.Exists(ctx, tx, userID)
		if err != nil {
			return err
		}
		if isArtist {
			if covers, err = purgeArtist(ctx, s.store, tx, userID); err != nil {
				return err
			}
		}
		return s.store.Users.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	s.dropBlobs(ctx, covers...)
	s.log.Info("user deleted", "user_id", userID)
	s.emit(EventUserDeleted, map[string]string{"user_id": userID})
	return nil
}

// userConflict maps a store-level unique violation on users to the same error
// the pre-checks return.
func userConflict(err error) error {
	if !errors.Is(err, repositories.ErrDuplicateEntry) {
		return err
	}
	var dup *repositories.DuplicateEntryError
	if errors.As(err, &dup) && dup.Column == "username" {
		return ErrUsernameInUse
	}
	return ErrEmailInUse
}
