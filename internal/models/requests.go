package models

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a partial profile update. Nil fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=255"`
}

// Empty reports whether no field was provided.
func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.Username == nil && r.FullName == nil
}

// ChangePasswordRequest is the body of a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// CreateArtistRequest is the body used to open an artist profile.
type CreateArtistRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateArtistRequest carries a partial artist update.
type UpdateArtistRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// Empty reports whether no field was provided.
func (r UpdateArtistRequest) Empty() bool {
	return r.Name == nil && r.Description == nil
}

// CreateAlbumRequest is the body used to create a draft album.
type CreateAlbumRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=255"`
	AlbumType AlbumType `json:"album_type" validate:"required,oneof=album single"`
}

// UpdateAlbumRequest carries a partial album update.
type UpdateAlbumRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=255"`
	AlbumType *AlbumType `json:"album_type" validate:"omitempty,oneof=album single"`
}

// Empty reports whether no field was provided.
func (r UpdateAlbumRequest) Empty() bool {
	return r.Name == nil && r.AlbumType == nil
}
