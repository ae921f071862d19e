package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStorage(client *minio.Client, cfg *config.MinioConfig) *MinioStorage {
	return &MinioStorage{
		client:  client,
		bucket:  cfg.BUCKET,
		baseURL: cfg.PublicBaseURL(),
	}
}

// EnsureBucket creates the bucket when missing and lets anonymous clients read objects,
// since project media is linked directly from the public site.
func (ms *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := ms.client.BucketExists(ctx, ms.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", ms.bucket, err)
	}

	if !exists {
		if err := ms.client.MakeBucket(ctx, ms.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", ms.bucket, err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, ms.bucket)

	if err := ms.client.SetBucketPolicy(ctx, ms.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

func (ms *MinioStorage) Upload(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := ms.client.PutObject(ctx, ms.bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info.Key, nil
}

func (ms *MinioStorage) PublicURL(objectPath string) string {
	return publicURL(ms.baseURL, objectPath)
}

// Remove deletes every object and reports all failures together.
func (ms *MinioStorage) Remove(ctx context.Context, objectPaths ...string) error {
	var errs []error
	for _, p := range objectPaths {
		if p == "" {
			continue
		}
		if err := ms.client.RemoveObject(ctx, ms.bucket, p, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, err))
		}
	}

	return errors.Join(errs...)
}

func publicURL(baseURL, objectPath string) string {
	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return baseURL + "/" + strings.Join(segments, "/")
}
