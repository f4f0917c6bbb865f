// Package config loads mediamix settings from the environment.
//
// An optional .env file is read first; variables already set in the
// environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL   = "https://api.pexels.com"
	DefaultAddr     = ":8080"
	DefaultQuery    = "nature"
	DefaultSubject  = "mediamix.events"
	DefaultCacheTTL = time.Hour
)

// Config holds runtime settings.
type Config struct {
	APIKey      string
	APIURL      string
	ConfigDir   string
	MongoURI    string
	NATSURL     string
	NATSSubject string
	Proxy       string
	Addr        string
	DownloadDir string
	Query       string
	Theme       string
	CacheTTL    time.Duration
}

// Load reads the optional env file then the environment.
func Load() (Config, error) {
	envFile := os.Getenv("MEDIAMIX_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIKey:      strings.TrimSpace(getenv("PEXELS_API_KEY")),
		APIURL:      orDefault(getenv("MEDIAMIX_API_URL"), DefaultAPIURL),
		ConfigDir:   getenv("MEDIAMIX_CONFIG_DIR"),
		MongoURI:    getenv("MEDIAMIX_MONGO_URI"),
		NATSURL:     getenv("MEDIAMIX_NATS_URL"),
		NATSSubject: orDefault(getenv("MEDIAMIX_NATS_SUBJECT"), DefaultSubject),
		Proxy:       getenv("MEDIAMIX_PROXY"),
		Addr:        orDefault(getenv("MEDIAMIX_ADDR"), DefaultAddr),
		DownloadDir: orDefault(getenv("MEDIAMIX_DOWNLOAD_DIR"), "."),
		Query:       orDefault(strings.TrimSpace(getenv("MEDIAMIX_DEFAULT_QUERY")), DefaultQuery),
		Theme:       orDefault(getenv("MEDIAMIX_THEME"), "light"),
		CacheTTL:    DefaultCacheTTL,
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = defaultConfigDir()
	}

	if raw := getenv("MEDIAMIX_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MEDIAMIX_CACHE_TTL %q: %w", raw, err)
		}
		if ttl < 0 {
			return Config{}, fmt.Errorf("invalid MEDIAMIX_CACHE_TTL %q: must not be negative", raw)
		}
		cfg.CacheTTL = ttl
	}

	return cfg, nil
}

// StatePath is the file used for durable storage when Mongo is not configured.
func (c Config) StatePath() string {
	return filepath.Join(c.ConfigDir, "state.json")
}

func defaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mediamix")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
