package services

import (
	"encoding/json"
	"time"
)

// Routing keys of the domain events published after a successful commit.
const (
	EventUserRegistered   = "user.registered"
	EventUserDeleted      = "user.deleted"
	EventArtistRegistered = "artist.registered"
	EventArtistVerified   = "artist.verified"
	EventArtistDeleted    = "artist.deleted"
	EventArtistFollowed   = "artist.followed"
	EventArtistUnfollowed = "artist.unfollowed"
	EventAlbumCreated     = "album.created"
	EventAlbumReleased    = "album.released"
	EventAlbumDeleted     = "album.deleted"
	EventAlbumLiked       = "album.liked"
	EventAlbumUnliked     = "album.unliked"
)

// EventPublisher delivers serialized domain events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the envelope of every published domain event.
type Event struct {
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data"`
}

// emit publishes an event when a publisher is configured. Failures are logged
// and never reach the caller: the state change has already been committed.
func (b *base) emit(routingKey string, data map[string]string) {
	if b.events == nil {
		return
	}
	body, err := json.Marshal(Event{Type: routingKey, OccurredAt: b.now(), Data: data})
	if err != nil {
		b.log.Error("failed to encode event", "event", routingKey, "error", err)
		return
	}
	if err := b.events.Publish(routingKey, body); err != nil {
		b.log.Warn("failed to publish event", "event", routingKey, "error", err)
	}
}
