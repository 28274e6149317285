package imagestore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Image is a stored asset reference: the serving URL plus the opaque id used
// to destroy the asset later.
type Image struct {
	URL      string
	PublicID string
}

// Store is the boundary to the image hosting provider. Catalog and user
// profile images go through it, and Destroy must run whenever the owning
// entity is deleted or its image replaced.
type Store interface {
	Upload(folder, filename string, data []byte) (Image, error)
	Destroy(publicID string) error
}

// DiskStore keeps assets under a local directory and serves them from a base
// URL. It stands in for a hosted provider in development and tests.
type DiskStore struct {
	Root    string
	BaseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Upload(folder, filename string, data []byte) (Image, error) {
	ext := filepath.Ext(filename)
	publicID := filepath.Join(folder, uuid.NewString()+ext)

	path := filepath.Join(s.Root, publicID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Image{}, fmt.Errorf("failed to prepare image folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Image{}, fmt.Errorf("failed to store image: %w", err)
	}

	return Image{
		URL:      s.BaseURL + "/" + filepath.ToSlash(publicID),
		PublicID: publicID,
	}, nil
}

func (s *DiskStore) Destroy(publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Root, publicID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to destroy image: %w", err)
	}
	return nil
}

// DecodeBase64 decodes a base64 upload payload as sent by the admin frontend.
func DecodeBase64(payload string) ([]byte, error) {
	// Tolerate data-URL prefixes like "data:image/png;base64,"
	if idx := strings.Index(payload, ","); idx >= 0 && strings.Contains(payload[:idx], "base64") {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
