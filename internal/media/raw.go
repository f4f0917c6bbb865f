package media

// Provider record schemas. Every nested object is optional: a missing field
// decodes to its zero value and the normalizer substitutes a fallback.

// Photo is one entry of the photo search "photos" array.
type Photo struct {
	ID           int64     `json:"id"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	URL          string    `json:"url"`
	Photographer string    `json:"photographer"`
	Alt          string    `json:"alt"`
	Src          *PhotoSrc `json:"src"`
}

// PhotoSrc holds the size variants of a photo.
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Video is one entry of the video search "videos" array.
type Video struct {
	ID            int64          `json:"id"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Duration      int            `json:"duration"`
	URL           string         `json:"url"`
	Image         string         `json:"image"`
	User          *VideoUser     `json:"user"`
	VideoFiles    []VideoFile    `json:"video_files"`
	VideoPictures []VideoPicture `json:"video_pictures"`
}

// VideoUser is the uploader of a video.
type VideoUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// VideoFile is one encoded rendition of a video.
type VideoFile struct {
	ID       int64  `json:"id"`
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Link     string `json:"link"`
}

// VideoPicture is a poster frame of a video.
type VideoPicture struct {
	ID      int64  `json:"id"`
	Picture string `json:"picture"`
	Nr      int    `json:"nr"`
}
