package destination

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sbp-go/internal/sbp"
)

const (
	envMinioAccessKey = "SBP_MINIO_ACCESS_KEY"
	envMinioSecretKey = "SBP_MINIO_SECRET_KEY"
)

// MinioConfig holds the settings for a MinIO destination.
type MinioConfig struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinioDestination uploads archives to a MinIO (or other S3-compatible)
// bucket, creating the bucket on first use.
type MinioDestination struct {
	name     string
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

var _ sbp.Destination = (*MinioDestination)(nil)

// MinioConfigFromEnv fills the access keys from SBP_MINIO_ACCESS_KEY and
// SBP_MINIO_SECRET_KEY.
func MinioConfigFromEnv(cfg MinioConfig) MinioConfig {
	if cfg.AccessKey == "" {
		cfg.AccessKey = os.Getenv(envMinioAccessKey)
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv(envMinioSecretKey)
	}
	return cfg
}

// NewMinioDestination creates a MinIO destination. No request is made until
// the first Put or ValidateSetup.
func NewMinioDestination(name string, cfg MinioConfig) (*MinioDestination, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("minio destination requires minio_endpoint to be set")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("minio access key and secret key are required (%s, %s)", envMinioAccessKey, envMinioSecretKey)
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("minio destination requires minio_bucket to be set")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	return &MinioDestination{
		name:   name,
		client: client,
		bucket: bucket,
		region: region,
	}, nil
}

func (d *MinioDestination) Name() string { return d.name }

func (d *MinioDestination) ensureBucket(ctx context.Context) error {
	d.initOnce.Do(func() {
		exists, err := d.client.BucketExists(ctx, d.bucket)
		if err != nil {
			d.initErr = err
			return
		}
		if exists {
			return
		}
		d.initErr = d.client.MakeBucket(ctx, d.bucket, minio.MakeBucketOptions{Region: d.region})
	})
	return d.initErr
}

func (d *MinioDestination) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := d.ensureBucket(ctx); err != nil {
		return fmt.Errorf("preparing bucket %s: %w", d.bucket, err)
	}

	info, err := d.client.PutObject(ctx, d.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType(key),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	if info.Size != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, info.Size)
	}
	return nil
}

func (d *MinioDestination) ValidateSetup(ctx context.Context) error {
	return d.ensureBucket(ctx)
}
