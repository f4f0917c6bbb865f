package media

import (
	"encoding/json"
	"fmt"
)

// preferredVideoQuality is picked over any other rendition when present.
const preferredVideoQuality = "hd"

// NormalizePhoto converts a provider photo record into a MediaItem.
func NormalizePhoto(p Photo) MediaItem {
	var src PhotoSrc
	if p.Src != nil {
		src = *p.Src
	}

	return MediaItem{
		ID:           ItemID(KindPhoto, p.ID),
		Kind:         KindPhoto,
		Attribution:  attribution(p.Photographer),
		ThumbnailURL: firstNonEmpty(src.Large, src.Medium, src.Original),
		DownloadURL:  firstNonEmpty(src.Original, src.Large2x, src.Large),
		Description:  p.Alt,
	}
}

// NormalizeVideo converts a provider video record into a MediaItem.
func NormalizeVideo(v Video) MediaItem {
	name := ""
	if v.User != nil {
		name = v.User.Name
	}

	thumbnail := ""
	for _, pic := range v.VideoPictures {
		if pic.Picture != "" {
			thumbnail = pic.Picture
			break
		}
	}

	return MediaItem{
		ID:           ItemID(KindVideo, v.ID),
		Kind:         KindVideo,
		Attribution:  attribution(name),
		ThumbnailURL: thumbnail,
		DownloadURL:  bestVideoLink(v.VideoFiles),
	}
}

// Normalize decodes a single raw provider record of the given kind. It is the
// entry point for one undecoded record; pages already decoded by the client go
// through NormalizePhotos and NormalizeVideos and give the same items.
// Missing fields are never an error; only undecodable input or an unknown kind is.
func Normalize(raw json.RawMessage, kind Kind) (MediaItem, error) {
	switch kind {
	case KindPhoto:
		var p Photo
		if err := json.Unmarshal(raw, &p); err != nil {
			return MediaItem{}, fmt.Errorf("failed to decode photo record: %w", err)
		}
		return NormalizePhoto(p), nil
	case KindVideo:
		var v Video
		if err := json.Unmarshal(raw, &v); err != nil {
			return MediaItem{}, fmt.Errorf("failed to decode video record: %w", err)
		}
		return NormalizeVideo(v), nil
	default:
		return MediaItem{}, fmt.Errorf("cannot normalize record of kind %q", kind)
	}
}

// NormalizePhotos maps a page of photos, keeping provider order.
func NormalizePhotos(photos []Photo) []MediaItem {
	items := make([]MediaItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, NormalizePhoto(p))
	}
	return items
}

// NormalizeVideos maps a page of videos, keeping provider order.
func NormalizeVideos(videos []Video) []MediaItem {
	items := make([]MediaItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, NormalizeVideo(v))
	}
	return items
}

func bestVideoLink(files []VideoFile) string {
	for _, f := range files {
		if f.Quality == preferredVideoQuality && f.Link != "" {
			return f.Link
		}
	}
	for _, f := range files {
		if f.Link != "" {
			return f.Link
		}
	}
	return ""
}

func attribution(name string) string {
	if name == "" {
		return UnknownAttribution
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
