// Package apikey persists media provider API keys in the config directory.
package apikey

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrKeyNotFound = errors.New("api key not found")
	ErrEmptyKey    = errors.New("api key must not be empty")
)

// Credential is the stored form of a key.
type Credential struct {
	Key     string    `json:"key"`
	SavedAt time.Time `json:"saved_at"`
}

type Storage struct {
	dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

func (s *Storage) path(provider string) string {
	return filepath.Join(s.dir, filepath.Base(provider)+"_key.json")
}

// Save writes key for provider with owner-only permissions.
func (s *Storage) Save(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(Credential{Key: key, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	return os.WriteFile(s.path(provider), data, 0600)
}

func (s *Storage) Load(provider string) (string, error) {
	data, err := os.ReadFile(s.path(provider)) // #nosec G304 -- provider is sanitized
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return "", fmt.Errorf("failed to unmarshal key: %w", err)
	}
	if cred.Key == "" {
		return "", ErrKeyNotFound
	}

	return cred.Key, nil
}

// Resolve prefers envKey and falls back to the stored key.
func (s *Storage) Resolve(provider, envKey string) (string, error) {
	if k := strings.TrimSpace(envKey); k != "" {
		return k, nil
	}
	return s.Load(provider)
}
