package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore keeps uploaded images as flat files in a single directory.
// Stored names are generated server-side, so client-supplied names never
// touch the filesystem.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the content under a generated name and returns that name.
// Only the extension is taken from the original name.
func (s *DiskStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := generateName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file. Removing a file that is already gone is not
// an error.
func (s *DiskStore) Remove(ctx context.Context, fileName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Reject anything that could escape the images directory.
	if fileName == "" || fileName != filepath.Base(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}

	err := os.Remove(filepath.Join(s.dir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// generateName builds "<unix-millis>-<random-hex><ext>". The extension comes
// from the original upload, defaulting to .jpg when absent.
func generateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
