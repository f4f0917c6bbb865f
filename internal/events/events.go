// Package events publishes user intents and feed activity to a message bus.
//
// This package enables mediamix to:
// - Announce searches, page loads and favorite changes over NATS
// - Run without a bus through NopPublisher
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source is stamped on every event this process emits.
const Source = "mediamix"

type Type string

const (
	TypeSearch          Type = "search"
	TypePageLoaded      Type = "page_loaded"
	TypeFavoriteToggled Type = "favorite_toggled"
	TypeThemeChanged    Type = "theme_changed"
	TypeDownload        Type = "download"
)

// Event is the envelope sent on the bus.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Query     string    `json:"query,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
	Page      int       `json:"page,omitempty"`
	Count     int       `json:"count,omitempty"`
	Value     string    `json:"value,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// New returns an event of type t with ID, Timestamp and Source filled in.
func New(t Type) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    Source,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
