package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/smith3v/fitness-ai/pkg/config"
	"github.com/smith3v/fitness-ai/pkg/logger"
)

// ObjectAPI is the subset of the S3 client the manager needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var ErrNoBucket = errors.New("storage bucket is not configured")

// Manager moves dataset files between the local filesystem and one bucket.
type Manager struct {
	client ObjectAPI
	bucket string
}

func New(client ObjectAPI, bucket string) (*Manager, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &Manager{client: client, bucket: bucket}, nil
}

// NewManager builds an S3 client from cfg. Static credentials and a custom
// endpoint are used when set; otherwise the default AWS chain applies.
func NewManager(ctx context.Context, cfg config.StorageConfig) (*Manager, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, cfg.Bucket)
}

func (m *Manager) Bucket() string {
	return m.bucket
}

func (m *Manager) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("upload %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", m.bucket, key, err)
	}
	logger.Info("uploaded object", "bucket", m.bucket, "key", key, "path", localPath)
	return nil
}

// Download writes the object to localPath, creating parent directories.
func (m *Manager) Download(ctx context.Context, key, localPath string) error {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download s3://%s/%s: %w", m.bucket, key, err)
	}
	defer out.Body.Close()

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("download s3://%s/%s: %w", m.bucket, key, err)
		}
	}
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("download s3://%s/%s: %w", m.bucket, key, err)
	}
	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		return fmt.Errorf("download s3://%s/%s: %w", m.bucket, key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("download s3://%s/%s: %w", m.bucket, key, err)
	}
	logger.Info("downloaded object", "bucket", m.bucket, "key", key, "path", localPath)
	return nil
}

// List returns every key under prefix, following continuation tokens.
func (m *Manager) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(m.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(m.bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", m.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	logger.Debug("listed objects", "bucket", m.bucket, "prefix", prefix, "count", len(keys))
	return keys, nil
}

// Delete removes each key. All keys are attempted; failures are joined.
func (m *Manager) Delete(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("delete s3://%s/%s: %w", m.bucket, key, err))
			continue
		}
		logger.Info("deleted object", "bucket", m.bucket, "key", key)
	}
	return errors.Join(errs...)
}
