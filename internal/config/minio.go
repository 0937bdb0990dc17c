package config

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Event posters are served straight from the bucket by URL, so objects
// need anonymous read.
const posterReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": "*",
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

// NewMinIOClient connects poster storage and makes sure the bucket exists
// with public read on its objects.
func NewMinIOClient(cfg *Config, logger *zap.Logger) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("check poster bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create poster bucket: %w", err)
		}
		logger.Info("created poster bucket", zap.String("bucket", cfg.MinIOBucket))
	}

	policy := fmt.Sprintf(posterReadPolicy, cfg.MinIOBucket)
	if err := client.SetBucketPolicy(ctx, cfg.MinIOBucket, policy); err != nil {
		logger.Warn("poster bucket policy not applied, uploads stay private",
			zap.String("bucket", cfg.MinIOBucket), zap.Error(err))
	}

	return client, nil
}
