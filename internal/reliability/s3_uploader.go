package reliability

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Config holds connection settings for S3-compatible object storage.
// Endpoint is optional: when set, uploads target a custom endpoint
// (Spaces, R2, MinIO) instead of AWS.
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// S3Uploader copies backup archives to an object storage bucket
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	log      zerolog.Logger
}

// NewS3Uploader creates an uploader from static credentials
func NewS3Uploader(ctx context.Context, cfg S3Config, log zerolog.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		log:      log.With().Str("component", "s3_uploader").Logger(),
	}, nil
}

// Upload sends a local archive to the bucket under backups/<filename>
func (u *S3Uploader) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive for upload: %w", err)
	}
	defer f.Close()

	key := "backups/" + filepath.Base(path)

	startTime := time.Now()
	_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.log.Info().
		Str("key", key).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Uploaded backup archive")

	return nil
}
