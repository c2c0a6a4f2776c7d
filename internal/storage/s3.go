package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Store
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps images in an S3 bucket under the recipes/ prefix
type S3Store struct {
	client  S3API
	bucket  string
	baseURL string
}

// NewS3Store uses baseURL as the public prefix, or the bucket's virtual-host
// URL when baseURL is empty
func NewS3Store(client S3API, bucket, region, baseURL string) *S3Store {
	if baseURL == "" || baseURL[0] == '/' {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, objectPrefix)
	}
	return &S3Store{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	name, err := objectName(name)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectPrefix + name),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return joinURL(s.baseURL, name), nil
}

func (s *S3Store) Delete(ctx context.Context, publicPath string) error {
	name, err := objectName(publicPath)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPrefix + name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
