package config

import (
	"os"
	"sync"
)

type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

var (
	minioConfig *MinioConfig
	minioOnce   sync.Once
)

func LoadMinioConfig() *MinioConfig {
	minioOnce.Do(func() {
		bucket := os.Getenv("MINIO_BUCKET")
		if bucket == "" {
			bucket = "resumes"
		}
		minioConfig = &MinioConfig{
			Endpoint:        os.Getenv("MINIO_ENDPOINT"),
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_ACCESS_KEY"),
			Bucket:          bucket,
			UseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		}
	})
	return minioConfig
}

// Enabled reports whether object storage is configured. Raw-file archiving is
// best effort and skipped entirely when no endpoint is set.
func (c *MinioConfig) Enabled() bool {
	return c.Endpoint != ""
}
