// Package upload stores product images in S3 and records their metadata.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/infrastructure/dynamo"
	s3infra "github.com/chicktrack-api/internal/infrastructure/s3"
	"github.com/chicktrack-api/internal/pkg/id"
)

type Input struct {
	Reader     io.Reader
	Filename   string
	Size       int64
	UploaderID string
}

type Service interface {
	Upload(ctx context.Context, input Input) (*domain.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error)
}

type service struct {
	s3    *s3infra.Store
	files *dynamo.FileRepo
}

func NewService(s3 *s3infra.Store, files *dynamo.FileRepo) Service {
	return &service{s3: s3, files: files}
}

func (s *service) Upload(ctx context.Context, input Input) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	contentType := s3infra.DetectContentType(safeName)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("only jpg, png and webp images are accepted: %w", domain.ErrBadRequest)
	}

	fileID := id.New()
	key := fmt.Sprintf("uploads/%s-%s", fileID, safeName)
	url, err := s.s3.Upload(ctx, key, input.Reader, contentType)
	if err != nil {
		return nil, err
	}

	f := &domain.File{
		FileID:      fileID,
		Object:      key,
		Name:        safeName,
		Size:        input.Size,
		ContentType: contentType,
		URL:         url,
		CreatedAt:   time.Now().UTC(),
	}
	if input.UploaderID != "" {
		f.UploadedByUserID = &input.UploaderID
	}
	if err := s.files.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.s3.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
