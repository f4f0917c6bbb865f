package media

import (
	"encoding/json"
	"testing"
)

func TestAC100_Photo_GetsKindPrefixedID(t *testing.T) {
	item := NormalizePhoto(Photo{ID: 101, Photographer: "Ana", Src: &PhotoSrc{Large: "l.jpg", Original: "o.jpg"}})

	if item.ID != "photo-101" {
		t.Errorf("user should see photo id 'photo-101', got %q", item.ID)
	}
	if item.Kind != KindPhoto {
		t.Errorf("item should be a photo, got %q", item.Kind)
	}
	if item.Attribution != "Ana" {
		t.Errorf("user should see photographer 'Ana', got %q", item.Attribution)
	}
}

func TestAC100_Photo_PrefersOriginalForDownloadAndLargeForThumbnail(t *testing.T) {
	item := NormalizePhoto(Photo{ID: 1, Src: &PhotoSrc{
		Original: "https://img/original.jpeg",
		Large2x:  "https://img/large2x.jpeg",
		Large:    "https://img/large.jpeg",
		Medium:   "https://img/medium.jpeg",
	}})

	if item.DownloadURL != "https://img/original.jpeg" {
		t.Errorf("download should use original variant, got %q", item.DownloadURL)
	}
	if item.ThumbnailURL != "https://img/large.jpeg" {
		t.Errorf("thumbnail should use large variant, got %q", item.ThumbnailURL)
	}
}

func TestAC100_Photo_FallsBackToLargeWhenOriginalMissing(t *testing.T) {
	item := NormalizePhoto(Photo{ID: 1, Src: &PhotoSrc{Large: "https://img/large.jpeg"}})

	if item.DownloadURL != "https://img/large.jpeg" {
		t.Errorf("download should fall back to large variant, got %q", item.DownloadURL)
	}
}

func TestAC101_Photo_MissingNestedFieldsDegradeGracefully(t *testing.T) {
	item := NormalizePhoto(Photo{ID: 7})

	if item.ThumbnailURL != "" || item.DownloadURL != "" {
		t.Errorf("missing src should yield empty urls, got thumb=%q download=%q", item.ThumbnailURL, item.DownloadURL)
	}
	if item.Attribution != UnknownAttribution {
		t.Errorf("missing photographer should yield %q, got %q", UnknownAttribution, item.Attribution)
	}
}

func TestAC102_Video_PrefersHDFile(t *testing.T) {
	item := NormalizeVideo(Video{
		ID:   55,
		User: &VideoUser{Name: "Bo"},
		VideoFiles: []VideoFile{
			{Quality: "sd", Link: "https://v/sd.mp4"},
			{Quality: "hd", Link: "https://v/hd.mp4"},
		},
		VideoPictures: []VideoPicture{{Picture: "https://v/poster.jpg"}},
	})

	if item.ID != "video-55" {
		t.Errorf("user should see video id 'video-55', got %q", item.ID)
	}
	if item.DownloadURL != "https://v/hd.mp4" {
		t.Errorf("download should prefer hd file, got %q", item.DownloadURL)
	}
	if item.ThumbnailURL != "https://v/poster.jpg" {
		t.Errorf("thumbnail should be first poster picture, got %q", item.ThumbnailURL)
	}
	if item.Attribution != "Bo" {
		t.Errorf("attribution should be uploader name, got %q", item.Attribution)
	}
}

func TestAC102_Video_FallsBackToFirstFileWithoutHD(t *testing.T) {
	item := NormalizeVideo(Video{ID: 1, VideoFiles: []VideoFile{
		{Quality: "sd", Link: "https://v/first.mp4"},
		{Quality: "uhd", Link: "https://v/second.mp4"},
	}})

	if item.DownloadURL != "https://v/first.mp4" {
		t.Errorf("download should fall back to first file, got %q", item.DownloadURL)
	}
}

func TestAC103_Video_MissingUserFilesAndPictures(t *testing.T) {
	item := NormalizeVideo(Video{ID: 9})

	if item.Attribution != "Unknown" {
		t.Errorf("missing user should yield Unknown, got %q", item.Attribution)
	}
	if item.DownloadURL != "" {
		t.Errorf("missing files should yield empty download url, got %q", item.DownloadURL)
	}
	if item.ThumbnailURL != "" {
		t.Errorf("missing pictures should yield empty thumbnail, got %q", item.ThumbnailURL)
	}
}

func TestNormalize_DecodesRawRecords(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		kind   Kind
		wantID string
	}{
		{"photo with null src", `{"id":101,"photographer":"A","src":null}`, KindPhoto, "photo-101"},
		{"video with null user", `{"id":55,"user":null,"video_files":null}`, KindVideo, "video-55"},
		{"photo with unknown fields", `{"id":3,"avg_color":"#fff","liked":false}`, KindPhoto, "photo-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := Normalize(json.RawMessage(tt.raw), tt.kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", item.ID, tt.wantID)
			}
		})
	}
}

func TestNormalize_RejectsUnknownKindAndBadJSON(t *testing.T) {
	if _, err := Normalize(json.RawMessage(`{"id":1}`), Kind("audio")); err == nil {
		t.Error("unknown kind should be rejected")
	}
	if _, err := Normalize(json.RawMessage(`{"id":`), KindPhoto); err == nil {
		t.Error("truncated json should be rejected")
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("video"); err != nil || k != KindVideo {
		t.Errorf("ParseKind(video) = %q, %v", k, err)
	}
	if _, err := ParseKind("gif"); err == nil {
		t.Error("ParseKind should reject gif")
	}
}
