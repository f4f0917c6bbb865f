package download

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const defaultBaseName = "download"

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileName builds "<name>-<unix millis>.<ext>" for an asset url.
func FileName(name, assetURL string, at time.Time) string {
	return fmt.Sprintf("%s-%d.%s", SanitizeName(name), at.UnixMilli(), ExtFromURL(assetURL))
}

// SanitizeName makes name safe as a path segment.
func SanitizeName(s string) string {
	s = strings.TrimSpace(s)
	s = invalidNameChars.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._-")
	if s == "" {
		return defaultBaseName
	}
	return s
}

// ExtFromURL returns the lower-case extension of the url path, at most four
// characters long, or "bin" when there is none.
func ExtFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "bin"
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if len(ext) > 4 {
		ext = ext[:4]
	}
	ext = invalidNameChars.ReplaceAllString(strings.ToLower(ext), "")
	if ext == "" {
		return "bin"
	}
	return ext
}
