package display

import (
	"strings"
	"testing"

	"github.com/gauthierbraillon/mediamix/internal/download"
	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/pagination"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
)

func photo() media.MediaItem {
	return media.MediaItem{
		ID:           "photo-2014422",
		Kind:         media.KindPhoto,
		Attribution:  "Joey Farina",
		ThumbnailURL: "https://images.pexels.com/photos/2014422/large.jpeg",
		DownloadURL:  "https://images.pexels.com/photos/2014422/original.jpeg",
		Description:  "Brown rocks during golden hour",
	}
}

func TestAC300_TerminalFeed_ShowsKindAndID(t *testing.T) {
	output := NewTerminalFormatter(prefs.ThemeLight).FormatItem(photo(), false)

	if !strings.Contains(output, "[PHOTO]") {
		t.Error("user should see media kind in terminal output")
	}
	if !strings.Contains(output, "photo-2014422") {
		t.Error("user should see item id in terminal output")
	}
}

func TestAC300_TerminalFeed_ShowsAttribution(t *testing.T) {
	output := NewTerminalFormatter(prefs.ThemeDark).FormatItem(photo(), false)

	if !strings.Contains(output, "Joey Farina") {
		t.Error("user should see the creator name in terminal output")
	}
}

func TestAC301_TerminalFeed_MarksFavorites(t *testing.T) {
	f := NewTerminalFormatter(prefs.ThemeLight)

	if !strings.Contains(f.FormatItem(photo(), true), favoriteMark) {
		t.Error("user should see a favorite marker on favorited items")
	}
	if strings.Contains(f.FormatItem(photo(), false), favoriteMark) {
		t.Error("user should not see a favorite marker on other items")
	}
}

func TestAC302_TerminalFeed_ShowsURLs(t *testing.T) {
	output := NewTerminalFormatter(prefs.ThemeLight).FormatItem(photo(), false)

	if !strings.Contains(output, "https://images.pexels.com/photos/2014422/original.jpeg") {
		t.Error("user should see the download URL in terminal output")
	}
	if !strings.Contains(output, "https://images.pexels.com/photos/2014422/large.jpeg") {
		t.Error("user should see the preview URL in terminal output")
	}
}

func TestAC302_TerminalFeed_ReportsMissingDownload(t *testing.T) {
	item := photo()
	item.DownloadURL = ""

	output := NewTerminalFormatter(prefs.ThemeLight).FormatItem(item, false)

	if !strings.Contains(output, "download unavailable") {
		t.Error("user should be told when an item has no download")
	}
}

func TestAC303_TerminalFeed_TruncatesLongText(t *testing.T) {
	formatter := NewTerminalFormatter(prefs.ThemeLight)
	longText := "This is a very long text that should be truncated because it exceeds the maximum length"

	truncated := formatter.TruncateText(longText, 20)

	if len([]rune(truncated)) > 20 {
		t.Errorf("user should see truncated text (max 20 chars), got %d chars", len(truncated))
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Error("user should see ellipsis indicating text was truncated")
	}
}

func TestAC303_TerminalFeed_PreservesShortText(t *testing.T) {
	output := NewTerminalFormatter(prefs.ThemeLight).TruncateText("Short", 20)

	if output != "Short" {
		t.Errorf("user should see full text when under limit, got: %s", output)
	}
}

func TestAC304_TerminalFeed_ShowsItemsInOrder(t *testing.T) {
	video := media.MediaItem{ID: "video-857251", Kind: media.KindVideo, Attribution: "Pixabay"}
	items := []media.MediaItem{photo(), video}

	output := NewTerminalFormatter(prefs.ThemeLight).FormatFeed(items, func(id string) bool { return id == "video-857251" })

	first, second := strings.Index(output, "photo-2014422"), strings.Index(output, "video-857251")
	if first < 0 || second < 0 || first > second {
		t.Error("user should see items in feed order")
	}
	if !strings.Contains(output, "[VIDEO] video-857251 "+favoriteMark) {
		t.Error("user should see favorite marker from lookup")
	}
}

func TestAC305_TerminalFeed_ShowsNoResultsMessage(t *testing.T) {
	output := NewTerminalFormatter(prefs.ThemeLight).FormatFeed(nil, nil)

	if !strings.Contains(output, "No results") {
		t.Error("user should see message indicating no results")
	}
}

func TestAC306_TerminalFeed_ShowsPaginationFooter(t *testing.T) {
	f := NewTerminalFormatter(prefs.ThemeLight)

	more := f.FormatSnapshot(pagination.Snapshot{Query: "ocean", Cursor: 2, HasMore: true}, 36)
	if !strings.Contains(more, "page 2") || !strings.Contains(more, "more available") {
		t.Errorf("user should see page and more indicator, got %q", more)
	}

	end := f.FormatSnapshot(pagination.Snapshot{Query: "ocean", Cursor: 5}, 60)
	if !strings.Contains(end, "end of results") {
		t.Errorf("user should see end of results, got %q", end)
	}
}

func TestFormatRecent(t *testing.T) {
	f := NewTerminalFormatter(prefs.ThemeLight)

	if !strings.Contains(f.FormatRecent(nil), "No recent") {
		t.Error("empty history should say so")
	}
	out := f.FormatRecent([]string{"cats", "ocean"})
	if !strings.HasPrefix(out, "1. cats\n2. ocean") {
		t.Errorf("unexpected recent listing: %q", out)
	}
}

func TestFormatDownload(t *testing.T) {
	out := NewTerminalFormatter(prefs.ThemeLight).FormatDownload(download.Result{Path: "/tmp/a.png", Bytes: 2048, Width: 4, Height: 3})

	for _, want := range []string{"/tmp/a.png", "2.0 KiB", "4x3"} {
		if !strings.Contains(out, want) {
			t.Errorf("download message should contain %q, got %q", want, out)
		}
	}
}
