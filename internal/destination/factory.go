package destination

import (
	"context"
	"fmt"

	"sbp-go/internal/config"
	"sbp-go/internal/sbp"
)

// NewDestinationFromConfig creates a Destination based on the config type.
func NewDestinationFromConfig(ctx context.Context, cfg config.DestinationConfig) (sbp.Destination, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryDestination(cfg.Name), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem destination requires fs_root to be set")
		}
		d, err := NewFilesystemDestination(cfg.Name, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "s3":
		d, err := NewS3Destination(ctx, cfg.Name, S3Config{
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	case "minio":
		d, err := NewMinioDestination(cfg.Name, MinioConfigFromEnv(MinioConfig{
			Endpoint: cfg.MinioEndpoint,
			Bucket:   cfg.MinioBucket,
			Region:   cfg.MinioRegion,
			UseSSL:   cfg.MinioUseSSL,
		}))
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown destination type: %q", cfg.Type)
	}
}

// NewDestinationsFromConfig builds every configured destination in order.
func NewDestinationsFromConfig(ctx context.Context, cfgs []config.DestinationConfig) ([]sbp.Destination, error) {
	dests := make([]sbp.Destination, 0, len(cfgs))
	for _, c := range cfgs {
		d, err := NewDestinationFromConfig(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", c.Name, err)
		}
		dests = append(dests, d)
	}
	return dests, nil
}
