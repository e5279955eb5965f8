package snapshot

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options points the snapshot service at an S3 compatible bucket.
type Options struct {
	Bucket       string `json:"s3_bucket" env:"S3_BUCKET"`
	Prefix       string `json:"s3_prefix" env:"S3_PREFIX"`
	Region       string `json:"s3_region" env:"S3_REGION"`
	Endpoint     string `json:"s3_endpoint" env:"S3_ENDPOINT"`
	AccessKey    string `json:"s3_access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `json:"s3_secret_key" env:"S3_SECRET_KEY"`
	UsePathStyle bool   `json:"s3_use_path_style" env:"S3_USE_PATH_STYLE"`
}

// DefaultOptions targets a local MinIO.
func DefaultOptions() Options {
	return Options{
		Bucket:       "mrtrade",
		Prefix:       "snapshots/",
		Region:       "us-east-1",
		Endpoint:     "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		UsePathStyle: true,
	}
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewS3Client builds a client for opts. Static credentials are used when
// an access key is configured; otherwise the default AWS chain applies.
func NewS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}
