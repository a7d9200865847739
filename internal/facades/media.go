package facades

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=media.go -destination=media_mock.go -package=facades

// ObjectPutter is the part of the S3 client the facade needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3Client builds an S3 client for an S3-compatible endpoint (AWS or MinIO)
// using static credentials.
func NewS3Client(ctx context.Context, endpoint, region, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// MediaS3Facade stores uploaded media in an S3 bucket and returns durable URLs.
type MediaS3Facade struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	timeout       time.Duration // upper bound for a single upload, 0 disables
	now           func() time.Time
}

// NewMediaS3Facade creates a new facade with an S3 client.
func NewMediaS3Facade(client ObjectPutter, bucket, publicBaseURL string, timeout time.Duration) *MediaS3Facade {
	return &MediaS3Facade{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		timeout:       timeout,
		now:           time.Now,
	}
}

// storageKey returns a unique object key such as "avatars/2025/09/26/<uuid>.png".
func (f *MediaS3Facade) storageKey(folder, filename string) string {
	d := f.now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s",
		folder, d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(filepath.Ext(filename)))
}

// Upload puts file under folder and returns its public URL.
// A failed upload leaves no object behind.
func (f *MediaS3Facade) Upload(ctx context.Context, folder string, file *models.MediaFile) (string, error) {
	if file == nil || file.Content == nil {
		return "", fmt.Errorf("no file to upload")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	key := f.storageKey(folder, file.Filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := f.client.PutObject(ctx, input); err != nil {
		logger.FromContext(ctx).Errorw("failed to upload media", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s", f.publicBaseURL, f.bucket, key)
	logger.FromContext(ctx).Infow("media uploaded", "url", url, "size", file.Size)
	return url, nil
}
