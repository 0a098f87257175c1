package blob

import (
	"context"
	"fmt"

	"uamtta/internal/config"
	"uamtta/internal/infra/blob/s3"
)

// Open selects a Store implementation from cfg.
func Open(ctx context.Context, cfg config.BlobConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.BlobFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case config.BlobS3:
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case config.BlobMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
