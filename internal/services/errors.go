package services

import "errors"

// Kind classifies a domain failure so the transport layer can pick a status.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindForbidden
	KindInvalidTransition
	KindBadInput
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindBadInput:
		return "bad_input"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is a typed domain error. Sentinel values are returned as-is so callers
// can match them with errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Accounts.
var (
	ErrEmailInUse         = newError(KindConflict, "email_in_use", "email already in use")
	ErrUsernameInUse      = newError(KindConflict, "username_in_use", "username already in use")
	ErrInvalidCredentials = newError(KindUnauthenticated, "invalid_credentials", "Incorrect email or password")
	ErrSamePassword       = newError(KindBadInput, "same_password", "New password cannot be the same as old password")
	ErrIncorrectPassword  = newError(KindBadInput, "incorrect_password", "Incorrect password")
	ErrUserNotFound       = newError(KindNotFound, "user_not_found", "User not found")
)

// Artists and follows.
var (
	ErrArtistExists          = newError(KindConflict, "artist_exists", "Artist already exists")
	ErrArtistNameInUse       = newError(KindConflict, "artist_name_in_use", "Artist name is already in use")
	ErrVerifiedArtistRename  = newError(KindInvalidTransition, "verified_artist_immutable", "Cannot change name of verified artist")
	ErrArtistAlreadyVerified = newError(KindInvalidTransition, "artist_already_verified", "Artist is already verified")
	ErrBadLookupParameters   = newError(KindBadInput, "bad_lookup_parameters", "Only one of id or name can be provided")
	ErrArtistNotFound        = newError(KindNotFound, "artist_not_found", "Artist not found")
	ErrNotArtist             = newError(KindForbidden, "not_artist", "User is not an artist")
	ErrCannotFollowSelf      = newError(KindBadInput, "cannot_follow_self", "Cannot follow self")
)

// Albums and likes.
var (
	ErrAlbumNameInUse         = newError(KindConflict, "album_name_in_use", "Album name is already in use")
	ErrReleasedAlbumImmutable = newError(KindInvalidTransition, "released_album_immutable", "Released albums cannot be modified")
	ErrAlbumAlreadyReleased   = newError(KindInvalidTransition, "album_already_released", "Album is already released")
	ErrAlbumNotFound          = newError(KindNotFound, "album_not_found", "Album does not exist")
	ErrAlbumNotOwned          = newError(KindForbidden, "album_not_owned", "Album is not owned by this artist")
	ErrInvalidAlbumType       = newError(KindBadInput, "invalid_album_type", "Album type must be album or single")
	ErrConflictingFilters     = newError(KindBadInput, "conflicting_filters", "Cannot list only released and only unreleased albums at once")
	ErrInvalidImage           = newError(KindBadInput, "invalid_image", "Cover must be a valid image")
	ErrCoverNotFound          = newError(KindNotFound, "cover_not_found", "Album has no cover")
)

// Listings.
var (
	ErrInvalidPage = newError(KindBadInput, "invalid_page", "offset must be >= 0 and limit must be between 1 and 50")
)
