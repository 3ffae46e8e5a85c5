package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"careernav/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client archives raw uploaded résumé files. Uploads are best effort: a
// storage failure must never block an analysis.
type Client struct {
	client *minio.Client
	bucket string
}

func NewClient(cfg *config.MinioConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Client{client: mc, bucket: cfg.Bucket}, nil
}

// UploadResume stores the raw file under a generated key and returns the key.
func (c *Client) UploadResume(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("resumes/%s%s", uuid.NewString(), filepath.Ext(fileName))
	_, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", key, err)
	}
	return key, nil
}
