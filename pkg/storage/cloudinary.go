package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageSize is the upload payload limit enforced before hitting the API.
const MaxImageSize = 10 << 20 // 10 MB

// ImageStorage defines the contract for the external image store (Cloudinary
// implementation). Records hold only the returned URL and public ID.
type ImageStorage interface {
	// UploadImage uploads an image and returns its secure URL and public ID.
	// It rejects non-image content types and payloads over MaxImageSize with
	// a client-correctable error.
	UploadImage(ctx context.Context, r io.Reader, size int64, contentType, folder, fileName string) (string, string, error)
	// DeleteImage removes an asset by public ID. It never fails the caller:
	// a delete problem is logged and reported as false.
	DeleteImage(ctx context.Context, publicID string) bool
	// DeleteImageByURL removes an asset when only its URL is known, deriving
	// the public ID from the URL path. Best effort, same semantics as
	// DeleteImage.
	DeleteImageByURL(ctx context.Context, fileURL string) bool
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a Cloudinary-backed ImageStorage.
// It expects CLOUDINARY_URL or individual CLOUDINARY_CLOUD_NAME /
// CLOUDINARY_API_KEY / CLOUDINARY_API_SECRET in the environment.
func NewCloudinaryStorage() (ImageStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld}, nil
}

func (s *cloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, size int64, contentType, folder, fileName string) (string, string, error) {
	if s == nil || s.cld == nil {
		return "", "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", "", apperror.BadRequest("Only image files are allowed")
	}
	if size > MaxImageSize {
		return "", "", apperror.BadRequest("Image size must be less than 10MB")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), strings.TrimSuffix(fileName, filepath.Ext(fileName)))

	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		Format:         "webp",
		Transformation: "q_auto",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, resp.PublicID, nil
}

func (s *cloudinaryStorage) DeleteImage(ctx context.Context, publicID string) bool {
	if s == nil || s.cld == nil || publicID == "" {
		return false
	}

	if ctx == nil {
		ctx = context.Background()
	}

	// Invalidate clears the CDN cache as well.
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		log.Printf("cloudinary delete failed for %s: %v", publicID, err)
		return false
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		log.Printf("cloudinary destroy returned result %q for %s", resp.Result, publicID)
		return false
	}

	return true
}

func (s *cloudinaryStorage) DeleteImageByURL(ctx context.Context, fileURL string) bool {
	if fileURL == "" || !strings.Contains(fileURL, "cloudinary.com") {
		return false
	}

	publicID := ExtractPublicID(fileURL)
	if publicID == "" {
		log.Printf("could not extract public ID from URL: %s", fileURL)
		return false
	}

	return s.DeleteImage(ctx, publicID)
}

// ExtractPublicID derives the public ID from a Cloudinary delivery URL.
// Example: https://res.cloudinary.com/demo/image/upload/v123/folder/sample.jpg
// -> folder/sample. This is a best-effort heuristic for URLs shaped by our
// own uploads; assets whose records store an explicit public ID never go
// through it.
func ExtractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	// Path is roughly /<cloud_name>/image/upload/v<version>/<folder>/<file>.<ext>
	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevant := parts[uploadIndex+1:]

	// Cloudinary versions are "v" followed by digits.
	if len(relevant) > 0 && isVersionSegment(relevant[0]) {
		relevant = relevant[1:]
	}

	if len(relevant) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevant, "/")
	ext := filepath.Ext(publicIDWithExt)
	return strings.TrimSuffix(publicIDWithExt, ext)
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
