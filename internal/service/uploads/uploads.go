package uploads

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vendas-ahora/api-vendas/internal/dto"
)

// MaxImageBytes is the upload ceiling for product images.
const MaxImageBytes = 2 << 20

// Service stores a file and returns its public URL.
type Service interface {
	Upload(ctx context.Context, file dto.UploadFile, prefix string) (string, error)
}

type S3Service struct {
	uploader   *manager.Uploader
	bucket     string
	publicBase string
}

func NewS3Service(uploader *manager.Uploader, bucket, publicBase string) *S3Service {
	return &S3Service{uploader: uploader, bucket: bucket, publicBase: publicBase}
}

func (s *S3Service) Upload(ctx context.Context, file dto.UploadFile, prefix string) (string, error) {
	key := buildObjectKey(file.Filename, prefix)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Reader,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}

// buildObjectKey appends a uuid so concurrent uploads of the same
// filename never collide.
func buildObjectKey(filename, prefix string) string {
	filename = sanitizeFilename(filename)
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		base = "file"
	}
	key := fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	if name == "" {
		return "file"
	}
	return name
}
