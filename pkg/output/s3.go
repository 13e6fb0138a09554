package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Config describes the bucket renders are uploaded to
type S3Config struct {
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
	Region    string
	Endpoint  string // Optional, for S3-compatible stores
	AccessKey string
	SecretKey string
}

// S3Uploader uploads images as PNG objects
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Uploader creates an uploader with a session built from cfg. Static
// credentials are used when an access key is set; otherwise the default
// AWS credential chain applies.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for an image name
func (u *S3Uploader) Key(name string) string {
	return path.Join(u.prefix, name+".png")
}

// Consume encodes img as PNG and uploads it
func (u *S3Uploader) Consume(ctx context.Context, img image.Image, name string) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	size := int64(len(data))
	_, err = u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Infof("Uploaded s3://%s/%s (%d bytes)", u.bucket, key, size)
	return nil
}
