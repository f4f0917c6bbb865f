// Package display provides terminal output formatting for mediamix.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gauthierbraillon/mediamix/internal/download"
	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/pagination"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
)

const (
	separator    = " • "
	favoriteMark = "★"
)

// TerminalFormatter formats media items for terminal display.
type TerminalFormatter struct {
	header lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
}

// NewTerminalFormatter creates a formatter coloured for theme.
func NewTerminalFormatter(theme prefs.Theme) *TerminalFormatter {
	accent := lipgloss.Color("#1f6feb")
	muted := lipgloss.Color("#57606a")
	if theme == prefs.ThemeDark {
		accent = lipgloss.Color("#58a6ff")
		muted = lipgloss.Color("#8b949e")
	}
	return &TerminalFormatter{
		header: lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Foreground(muted),
		accent: lipgloss.NewStyle().Foreground(accent),
	}
}

// FormatItem formats a single media item for display.
func (f *TerminalFormatter) FormatItem(item media.MediaItem, favorite bool) string {
	var lines []string

	// Header: [KIND] id ★
	header := fmt.Sprintf("[%s] %s", strings.ToUpper(string(item.Kind)), item.ID)
	if favorite {
		header += " " + favoriteMark
	}
	lines = append(lines, f.header.Render(header))

	lines = append(lines, "  by "+item.Attribution)

	if item.Description != "" {
		lines = append(lines, "  "+f.muted.Render(f.TruncateText(item.Description, 72)))
	}
	if item.ThumbnailURL != "" {
		lines = append(lines, "  preview  "+item.ThumbnailURL)
	}
	if item.DownloadURL != "" {
		lines = append(lines, "  download "+f.accent.Render(item.DownloadURL))
	} else {
		lines = append(lines, "  "+f.muted.Render("download unavailable"))
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatFeed formats items in order. isFavorite may be nil.
func (f *TerminalFormatter) FormatFeed(items []media.MediaItem, isFavorite func(id string) bool) string {
	if len(items) == 0 {
		return "No results.\n"
	}

	formatted := make([]string, 0, len(items))
	for _, item := range items {
		fav := isFavorite != nil && isFavorite(item.ID)
		formatted = append(formatted, f.FormatItem(item, fav))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatSnapshot renders the pagination state as a one-line footer.
func (f *TerminalFormatter) FormatSnapshot(s pagination.Snapshot, total int) string {
	parts := []string{
		fmt.Sprintf("%q", s.Query),
		fmt.Sprintf("page %d", s.Cursor),
		fmt.Sprintf("%d items", total),
	}
	if s.HasMore {
		parts = append(parts, "more available")
	} else {
		parts = append(parts, "end of results")
	}
	return f.muted.Render(strings.Join(parts, separator)) + "\n"
}

// FormatRecent lists recent searches, most recent first.
func (f *TerminalFormatter) FormatRecent(queries []string) string {
	if len(queries) == 0 {
		return "No recent searches.\n"
	}
	var b strings.Builder
	for i, q := range queries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return b.String()
}

// FormatDownload reports where a download was saved.
func (f *TerminalFormatter) FormatDownload(r download.Result) string {
	msg := fmt.Sprintf("Saved %s (%s)", r.Path, humanBytes(r.Bytes))
	if r.Width > 0 && r.Height > 0 {
		msg += fmt.Sprintf(" %dx%d", r.Width, r.Height)
	}
	return msg + "\n"
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
