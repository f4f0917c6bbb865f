// Package download saves a media asset to disk.
package download

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/gauthierbraillon/mediamix/internal/metrics"
)

// ErrNoURL is returned when an item has no downloadable asset.
var ErrNoURL = errors.New("download URL not available")

type Options struct {
	OutputDir string
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
	Now       func() time.Time
}

// Result describes a saved file. Width and Height are set for decodable images.
type Result struct {
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Downloader struct {
	outputDir  string
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

func New(opts Options) *Downloader {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Downloader{
		outputDir: opts.OutputDir,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		userAgent: opts.UserAgent,
		now:       opts.Now,
	}
}

// Download fetches url into the output directory under a name derived from name.
func (d *Downloader) Download(ctx context.Context, url, name string) (Result, error) {
	res, err := d.download(ctx, url, name)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return Result{}, err
	}
	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return res, nil
}

func (d *Downloader) download(ctx context.Context, url, name string) (Result, error) {
	if url == "" {
		return Result{}, ErrNoURL
	}
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(d.outputDir, FileName(name, url, d.now()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("download failed: unexpected status %s", resp.Status)
	}

	tmpPath := outPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return Result{}, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, fmt.Errorf("write file: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, fmt.Errorf("rename file: %w", err)
	}

	res := Result{Path: outPath, Bytes: n}
	res.Width, res.Height = imageSize(outPath)
	return res, nil
}

// imageSize returns the dimensions of a jpeg, png, gif or webp file, or zeros.
func imageSize(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
