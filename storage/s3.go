package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"meditation-backend/config"
	"meditation-backend/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore uploads objects and knows their public address.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// S3Store wraps a minio client bound to one bucket. It talks to AWS S3 or any
// S3 compatible endpoint.
type S3Store struct {
	client   *minio.Client
	endpoint string
	bucket   string
	region   string
	useSSL   bool
}

// NewS3Store creates the client. No network call is made until first use.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, errors.New("object storage bucket is not configured")
	}
	endpoint := strings.TrimSpace(cfg.S3Endpoint)
	if strings.Contains(endpoint, "://") {
		if parsed, err := url.Parse(endpoint); err == nil {
			endpoint = parsed.Host
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	logger.Info("Object storage client ready",
		logger.String("endpoint", endpoint),
		logger.String("region", cfg.S3Region),
		logger.String("bucket", cfg.S3Bucket))

	return &S3Store{
		client:   client,
		endpoint: endpoint,
		bucket:   strings.TrimSpace(cfg.S3Bucket),
		region:   cfg.S3Region,
		useSSL:   cfg.S3UseSSL,
	}, nil
}

// Put uploads body under key with the given content type.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

// PublicURL is deterministic in bucket, region and key.
func (s *S3Store) PublicURL(key string) string {
	return publicURL(s.endpoint, s.bucket, s.region, s.useSSL, key)
}

func publicURL(endpoint, bucket, region string, useSSL bool, key string) string {
	escaped := escapeKey(key)
	if isAWSEndpoint(endpoint) {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, escaped)
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, escaped)
}

func isAWSEndpoint(endpoint string) bool {
	return endpoint == "s3.amazonaws.com" ||
		(strings.HasPrefix(endpoint, "s3.") && strings.HasSuffix(endpoint, ".amazonaws.com"))
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		logger.Info("Bucket exists", logger.String("bucket", s.bucket))
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	logger.Info("Bucket created", logger.String("bucket", s.bucket))
	return nil
}

// List returns every object under prefix.
func (s *S3Store) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	// Cancelling stops the lister goroutine when we bail out early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []ObjectInfo
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", s.bucket, object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
		})
	}
	return objects, nil
}

// Bucket returns the configured bucket name.
func (s *S3Store) Bucket() string {
	return s.bucket
}

// NewObjectKey prefixes the client supplied filename with a random UUID so uploads
// never collide while the original name stays readable.
func NewObjectKey(filename string) string {
	return uuid.NewString() + "_" + safeBaseName(filename)
}

func safeBaseName(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "audio"
	}
	return name
}
