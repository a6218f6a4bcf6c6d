package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/config"
)

// LocalStorageClient writes image blobs under a configured directory and
// resolves stored keys to public references servable by a static file route.
type LocalStorageClient struct {
	Directory    string
	PublicPrefix string
}

func InitLocalStorageClient(cfg *config.EnvConfig) *LocalStorageClient {
	dir := cfg.Storage.UploadDirectory
	if dir == "" {
		panic("Upload directory is not configured")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(fmt.Sprintf("Failed to create upload directory %s: %v", dir, err))
	}

	prefix := strings.TrimSuffix(cfg.Storage.PublicPrefix, "/")
	if prefix == "" {
		prefix = "/uploads"
	}

	return &LocalStorageClient{
		Directory:    dir,
		PublicPrefix: prefix,
	}
}

// Store writes data durably and returns the generated storage key. Keys are
// uuid-prefixed so concurrent writers never collide; a wall-clock prefix
// would overwrite blobs written within the same tick.
func (s *LocalStorageClient) Store(data []byte, displayName string) (string, error) {
	key := uuid.New().String() + "_" + sanitizeFileName(displayName)

	path := filepath.Join(s.Directory, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	return key, nil
}

// Delete removes the blob for key. A missing blob is not an error, so delete
// is idempotent and metadata cleanup is never blocked by an absent file.
func (s *LocalStorageClient) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("storage key cannot be empty")
	}

	err := os.Remove(filepath.Join(s.Directory, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}

	return nil
}

// Resolve maps a storage key to its public reference, e.g. /uploads/<key>.
func (s *LocalStorageClient) Resolve(key string) string {
	return s.PublicPrefix + "/" + key
}

// Exists reports whether a blob is present for key.
func (s *LocalStorageClient) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.Directory, key))
	return err == nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "blob"
	}
	return b.String()
}
