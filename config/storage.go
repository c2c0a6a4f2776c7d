package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Image storage drivers
const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageMinio = "minio"
)

// StorageConfig selects and configures the recipe image store
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	LocalDir      string `yaml:"local_dir"`
	PublicBaseURL string `yaml:"public_base_url"`
	MaxImageSize  int64  `yaml:"max_image_size"`

	// S3 / MinIO
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

func (s StorageConfig) validate() []ValidationError {
	var errs []ValidationError
	switch s.Driver {
	case StorageLocal:
		if s.LocalDir == "" {
			errs = append(errs, ValidationError{Field: "storage.local_dir", Message: "is required for local storage"})
		}
	case StorageS3:
		if s.Bucket == "" {
			errs = append(errs, ValidationError{Field: "storage.bucket", Message: "is required for s3 storage"})
		}
	case StorageMinio:
		if s.Bucket == "" || s.Endpoint == "" {
			errs = append(errs, ValidationError{Field: "storage", Message: "bucket and endpoint are required for minio storage"})
		}
	default:
		errs = append(errs, ValidationError{Field: "storage.driver", Message: fmt.Sprintf("unsupported driver %q", s.Driver)})
	}
	if s.MaxImageSize <= 0 {
		errs = append(errs, ValidationError{Field: "storage.max_image_size", Message: "must be positive"})
	}
	return errs
}

// NewS3Client initializes an S3 client from the default AWS chain, with an
// optional custom endpoint and static credentials.
func NewS3Client(ctx context.Context, cfg StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
