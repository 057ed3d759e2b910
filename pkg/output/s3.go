package output

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config describes an S3-compatible bucket for rendered images
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
}

// S3ConfigFromEnv reads PATHTRACER_S3_* variables. Load a .env file first
// if one is used.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		AccessKey: getEnv("PATHTRACER_S3_ACCESS_KEY", ""),
		SecretKey: getEnv("PATHTRACER_S3_SECRET_KEY", ""),
		Endpoint:  getEnv("PATHTRACER_S3_ENDPOINT", ""),
		Region:    getEnv("PATHTRACER_S3_REGION", "us-east-1"),
		Bucket:    getEnv("PATHTRACER_S3_BUCKET", ""),
		Prefix:    getEnv("PATHTRACER_S3_PREFIX", "renders/"),
	}
}

// Validate reports missing settings required to upload
func (c S3Config) Validate() error {
	var missing []string
	if c.AccessKey == "" {
		missing = append(missing, "PATHTRACER_S3_ACCESS_KEY")
	}
	if c.SecretKey == "" {
		missing = append(missing, "PATHTRACER_S3_SECRET_KEY")
	}
	if c.Bucket == "" {
		missing = append(missing, "PATHTRACER_S3_BUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("S3 upload is not configured, missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// S3Uploader stores rendered images in a bucket
type S3Uploader struct {
	client s3iface.S3API
	config S3Config
}

// NewS3Uploader creates an uploader with a session built from config
func NewS3Uploader(config S3Config) (*S3Uploader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), config), nil
}

// NewS3UploaderWithClient wraps an existing S3 client
func NewS3UploaderWithClient(client s3iface.S3API, config S3Config) *S3Uploader {
	return &S3Uploader{client: client, config: config}
}

// Key returns the object key used for name
func (u *S3Uploader) Key(name string) string {
	return u.config.Prefix + name
}

// Upload stores data under the prefixed key and returns that key
func (u *S3Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := u.Key(name)

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, len(data))
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
