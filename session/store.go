// Package session persists browser cookies between runs so the
// expensive interactive login can usually be skipped.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Cookie is one serialized cookie descriptor.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"` // unix seconds, 0 = session cookie
	Secure   bool    `json:"secure,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
}

// envelope versions the on-disk format for forward compatibility.
type envelope struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Cookies []Cookie  `json:"cookies"`
}

const formatVersion = 1

// FileStore keeps one cookie blob per site key under Dir.
type FileStore struct {
	Dir string
}

func (s FileStore) path(siteKey string) string {
	return filepath.Join(s.Dir, siteKey+"_session.json")
}

// Save serializes the cookie set for siteKey to durable storage.
func (s FileStore) Save(siteKey string, cookies []Cookie) error {
	data, err := json.MarshalIndent(envelope{
		Version: formatVersion,
		SavedAt: time.Now(),
		Cookies: cookies,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", siteKey, err)
	}
	if err := os.WriteFile(s.path(siteKey), data, 0o600); err != nil {
		return fmt.Errorf("write session %s: %w", siteKey, err)
	}
	return nil
}

// Load returns the stored cookie set for siteKey. The boolean is false
// when no session has been saved; a corrupt or incompatible file is an
// error, not an absence.
func (s FileStore) Load(siteKey string) ([]Cookie, bool, error) {
	data, err := os.ReadFile(s.path(siteKey))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read session %s: %w", siteKey, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", siteKey, err)
	}
	if env.Version != formatVersion {
		return nil, false, fmt.Errorf("session %s: unsupported format version %d", siteKey, env.Version)
	}
	return env.Cookies, true, nil
}

// Clear removes a stored session, used once replay proves it stale.
func (s FileStore) Clear(siteKey string) error {
	err := os.Remove(s.path(siteKey))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
