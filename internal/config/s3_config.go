package config

import (
	"fmt"

	"github.com/vendas-ahora/api-vendas/internal/config_lib"
	"github.com/vendas-ahora/api-vendas/internal/service/uploads"
)

func NewUploadsService(s3 S3Config) (*uploads.S3Service, error) {
	if s3.Region == "" || s3.Bucket == "" {
		return nil, fmt.Errorf("missing AWS_REGION and/or S3_BUCKET")
	}

	_, uploader, publicBase, err := config_lib.NewS3Client(s3.Region, s3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("creating S3 client: %w", err)
	}

	return uploads.NewS3Service(uploader, s3.Bucket, publicBase), nil
}
