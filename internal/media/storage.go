// Package media stores uploaded recipe images on the local filesystem.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// recipeDir is the directory under the media root holding recipe images.
const recipeDir = "uploads/recipe"

// ErrInvalidImage is returned when an upload is empty or not a decodable image.
var ErrInvalidImage = errors.New("upload a valid image")

// allowedExt maps accepted file extensions to decoder format names.
var allowedExt = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".webp": "webp",
}

// Storage writes images under a root directory and builds their public URLs.
// Safe for concurrent use.
type Storage struct {
	root      string
	urlPrefix string
	mu        sync.Mutex
}

// NewStorage creates a Storage rooted at root, creating the recipe image
// directory if needed. urlPrefix is the public URL path the root is served under.
func NewStorage(root, urlPrefix string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("media root cannot be empty")
	}

	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(recipeDir)), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Storage{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/") + "/",
	}, nil
}

// Root returns the filesystem root of the storage.
func (s *Storage) Root() string {
	return s.root
}

// Save validates data as an image and stores it under a fresh name.
// The extension is taken from filename when it is a known image type,
// otherwise from the decoded format.
func (s *Storage) Save(ctx context.Context, recipeID int64, data []byte, filename string) (*models.Image, error) {
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Log.Warnw("rejected recipe image", "recipeID", recipeID, "filename", filename, "error", err)
		return nil, ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		ext = "." + format
	}

	rel := path.Join(recipeDir, uuid.NewString()+ext)

	s.mu.Lock()
	err = os.WriteFile(s.Path(rel), data, 0o644)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	hash, err := ComputeBlurHash(decoded)
	if err != nil {
		logger.Log.Warnw("failed to compute blurhash", "recipeID", recipeID, "path", rel, "error", err)
	}

	logger.Log.Infow("stored recipe image",
		"recipeID", recipeID,
		"path", rel,
		"format", format,
		"size", len(data),
	)

	return &models.Image{Path: rel, BlurHash: hash}, nil
}

// Delete removes a stored image. Missing files are not an error.
func (s *Storage) Delete(rel string) error {
	if rel == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// Path returns the filesystem path of a stored image.
func (s *Storage) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))
}

// URL returns the public URL of a stored image.
func (s *Storage) URL(rel string) string {
	return s.urlPrefix + strings.TrimPrefix(rel, "/")
}
