// Package storage uploads account exports to object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultURLExpiry = 15 * time.Minute

// S3Config holds what the exporter needs to reach a bucket.
// Static keys are optional; without them the default AWS credential chain is used.
// Endpoint points the client at an S3-compatible service such as MinIO.
type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	URLExpiry time.Duration
}

// Upload describes a stored object and a temporary link to download it
type Upload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// S3Exporter stores export documents in S3 and presigns download links
type S3Exporter struct {
	client    *s3.Client
	presign   *s3.PresignClient
	bucket    string
	urlExpiry time.Duration
}

// NewS3Exporter creates an exporter from cfg
func NewS3Exporter(ctx context.Context, cfg S3Config) (*S3Exporter, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = defaultURLExpiry
	}

	return &S3Exporter{
		client:    client,
		presign:   s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		urlExpiry: expiry,
	}, nil
}

// Upload stores body under key and returns a presigned GET link for it
func (e *S3Exporter) Upload(ctx context.Context, key, contentType string, body []byte) (*Upload, error) {
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	request, err := e.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = e.urlExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &Upload{
		Key:       key,
		URL:       request.URL,
		ExpiresAt: time.Now().Add(e.urlExpiry).UTC(),
	}, nil
}
