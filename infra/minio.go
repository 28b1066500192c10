package infra

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fileshare-io/fileshare-api/config"
)

type MinioClient struct {
	Admin     *madmin.AdminClient
	Client    *minio.Client
	Endpoint  string
	bucket    string
	publicURL string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	madminClient, err := madmin.New(endpoint, rootUser, rootPassword, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	client := &MinioClient{
		Admin:     madminClient,
		Client:    minioClient,
		Endpoint:  endpoint,
		bucket:    cfg.Minio.Bucket,
		publicURL: strings.TrimSuffix(cfg.Minio.PublicURL, "/"),
	}

	if err := client.EnsureBucket(context.Background(), cfg.Minio.Bucket); err != nil {
		panic(fmt.Sprintf("Failed to ensure MinIO bucket: %v", err))
	}

	return client
}

// EnsureBucket creates the bucket if it doesn't exist
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores a blob under the given key and returns the provider etag.
func (m *MinioClient) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}

	info, err := m.Client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return info.ETag, nil
}

// PresignedGetURL mints a time-limited signed download URL for a stored blob.
func (m *MinioClient) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}

	signed, err := m.Client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}

	return signed.String(), nil
}

// Remove deletes a blob by key.
func (m *MinioClient) Remove(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := m.Client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}

	return nil
}

// ObjectURL returns the permanent, non-signed URL of a stored blob.
func (m *MinioClient) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, key)
}

// Bucket returns the configured bucket name.
func (m *MinioClient) Bucket() string {
	return m.bucket
}

// HealthCheck probes the storage backend through the admin API.
func (m *MinioClient) HealthCheck(ctx context.Context) error {
	if _, err := m.Admin.ServerInfo(ctx); err != nil {
		return fmt.Errorf("storage backend unreachable: %w", err)
	}
	return nil
}
