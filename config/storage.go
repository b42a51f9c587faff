package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// BucketManuscripts holds uploaded manuscript files.
	BucketManuscripts = "manuscripts"
	// BucketReviewerCV holds reviewer application CVs.
	BucketReviewerCV = "reviewercv"

	// maxObjectSize mirrors the 50 MiB server-side bucket cap.
	maxObjectSize = 50 * 1024 * 1024
)

// Storage is the process-scoped object storage handle, set by InitStorage.
var Storage *ObjectStore

// ObjectStore wraps the S3-compatible storage client. Objects are written
// once and never overwritten; a key collision is a caller bug.
type ObjectStore struct {
	client  *minio.Client
	baseURL string
}

// InitStorage connects to the object storage backend and ensures the
// application buckets exist. Misconfiguration is fatal: a process that
// cannot reach storage must not accept uploads.
func InitStorage() {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	useSSL := os.Getenv("STORAGE_USE_SSL") != "false"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		log.Fatal("Storage configuration is missing (STORAGE_ENDPOINT/STORAGE_ACCESS_KEY/STORAGE_SECRET_KEY)")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("Failed to create storage client:", err)
	}

	store := &ObjectStore{
		client:  client,
		baseURL: strings.TrimSuffix(client.EndpointURL().String(), "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, bucket := range []string{BucketManuscripts, BucketReviewerCV} {
		if err := store.EnsureBucket(ctx, bucket); err != nil {
			log.Fatalf("Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	Storage = store
	log.Println("Object storage connected successfully")
}

// EnsureBucket creates the named bucket with anonymous read access if it
// does not already exist.
func (s *ObjectStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("bucket probe failed: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("bucket create failed: %w", err)
	}

	policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, bucket)
	if err := s.client.SetBucketPolicy(ctx, bucket, policy); err != nil {
		return fmt.Errorf("bucket policy failed: %w", err)
	}

	return nil
}

// Upload writes an object under key. Overwriting an existing key is refused.
func (s *ObjectStore) Upload(ctx context.Context, bucket, key string, content io.Reader, size int64, contentType string) error {
	if size > maxObjectSize {
		return fmt.Errorf("object exceeds %d byte bucket limit", int64(maxObjectSize))
	}

	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err == nil {
		return fmt.Errorf("object %s/%s already exists", bucket, key)
	} else if code := minio.ToErrorResponse(err).Code; code != "NoSuchKey" && code != "NoSuchBucket" {
		return fmt.Errorf("object probe failed: %w", err)
	}

	if _, err := s.client.PutObject(ctx, bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return fmt.Errorf("object write failed: %w", err)
	}

	return nil
}

// PublicURL derives the anonymous-read URL of a stored object.
func (s *ObjectStore) PublicURL(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", errors.New("bucket or key is missing")
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, key), nil
}

// Delete removes an object. Removing an absent key is not an error.
func (s *ObjectStore) Delete(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("object delete failed: %w", err)
	}
	return nil
}

// Exists reports whether an object is present. Backend errors collapse to
// false; this is a liveness probe, never a correctness check.
func (s *ObjectStore) Exists(ctx context.Context, bucket, key string) bool {
	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	return err == nil
}

// Ping verifies the storage backend is reachable, for health reporting.
func (s *ObjectStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, BucketManuscripts); err != nil {
		return err
	}
	return nil
}
