// Package media defines the canonical media record shared by every part of
// mediamix and the provider schemas it is normalized from.
//
// This package enables mediamix to:
// - Treat photos and videos from different endpoints as one feed item type
// - Decode provider records with every nested field optional
// - Derive stable, collision-free identifiers per kind
package media

import "fmt"

// Kind identifies the media category of an item.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// UnknownAttribution is used when the provider does not name a creator.
const UnknownAttribution = "Unknown"

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// ParseKind converts a user supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("invalid kind %q: must be 'photo' or 'video'", s)
	}
	return k, nil
}

// MediaItem is the canonical record used internally regardless of provider shape.
// ID is the only identity; two items with the same ID are the same logical item.
type MediaItem struct {
	ID           string `json:"id"`
	Kind         Kind   `json:"kind"`
	Attribution  string `json:"attribution"`
	ThumbnailURL string `json:"thumbnail_url"`
	DownloadURL  string `json:"download_url"`
	Description  string `json:"description,omitempty"`
}

// ItemID builds the feed identifier for a provider record of the given kind.
func ItemID(kind Kind, providerID int64) string {
	return fmt.Sprintf("%s-%d", kind, providerID)
}
