package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AttachmentStore saves uploaded attachments and returns path references to
// persist on the requisition.
type AttachmentStore interface {
	// Save stores the file bytes under a collision-free name derived from the
	// original filename and returns the stored path reference.
	Save(filename string, data []byte) (string, error)

	// Get retrieves a stored attachment by its path reference.
	Get(path string) ([]byte, error)

	// Delete removes a stored attachment.
	Delete(path string) error
}

// LocalStore implements AttachmentStore on the local filesystem with an
// injected root directory.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

var _ AttachmentStore = (*LocalStore)(nil)

func (l *LocalStore) Save(filename string, data []byte) (string, error) {
	name := uuid.NewString() + "-" + sanitize(filename)
	path := filepath.Join(l.basePath, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	return name, nil
}

func (l *LocalStore) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, filepath.Base(path)))
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	return data, nil
}

func (l *LocalStore) Delete(path string) error {
	if err := os.Remove(filepath.Join(l.basePath, filepath.Base(path))); err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	return nil
}

// sanitize strips directory components and whitespace from a client filename.
func sanitize(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) {
		return "attachment"
	}
	return base
}
