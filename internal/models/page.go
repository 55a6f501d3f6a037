package models

const (
	// DefaultPageSize is used when a caller does not ask for a page size.
	DefaultPageSize = 20
	// MaxPageSize is the largest page a caller may request.
	MaxPageSize = 50
)

// Page is an offset window over an ordered listing.
type Page struct {
	Skip int `json:"offset"`
	Take int `json:"limit"`
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Skip: 0, Take: DefaultPageSize}
}

// Valid reports whether the window is within the accepted bounds.
func (p Page) Valid() bool {
	return p.Skip >= 0 && p.Take >= 1 && p.Take <= MaxPageSize
}

// AlbumFilter narrows an artist's album listing by release state.
type AlbumFilter struct {
	ReleasedOnly   bool
	UnreleasedOnly bool
}
