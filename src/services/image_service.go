package services

import (
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize is the upload limit for product images (5 MB)
const MaxImageSize = 5 * 1024 * 1024

// ImageService stores product images under the public upload directory
type ImageService struct {
	dir string
}

// NewImageService creates a new image service rooted at dir
func NewImageService(dir string) *ImageService {
	return &ImageService{dir: dir}
}

// Save validates and writes an uploaded image, returning the relative URL to
// store on the product row. Rejections happen before any database write.
func (is *ImageService) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", fmt.Errorf("%w: image exceeds 5MB", ErrInvalidUpload)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", fmt.Errorf("%w: only image files are accepted", ErrInvalidUpload)
	}

	if err := os.MkdirAll(is.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("produto-%d-%d%s",
		time.Now().UnixNano(), rand.IntN(1_000_000_000), strings.ToLower(filepath.Ext(file.Filename)))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(is.dir, name)) // #nosec G304 -- name is generated above
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes a stored image by the URL returned from Save. Anything that
// does not point straight into the upload dir is ignored.
func (is *ImageService) Remove(url string) {
	name := strings.TrimPrefix(url, "/uploads/")
	if name == "" || name == url || strings.ContainsAny(name, `/\`) {
		return
	}
	_ = os.Remove(filepath.Join(is.dir, name))
}
