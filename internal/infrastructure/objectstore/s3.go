// Package objectstore uploads proof-of-payment images to an S3-compatible bucket
// and derives their public URLs.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"realreselling/internal/config"
	"realreselling/pkg/id"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const keyPrefix = "uplatnice"

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client     putObjectAPI
	bucket     string
	publicBase string
	now        func() time.Time
}

// NewS3Store builds a client with static credentials. S3Endpoint, when set, points the
// client at a non-AWS backend (Supabase storage, MinIO) using path-style addressing.
func NewS3Store(ctx context.Context, c *config.Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3AccessKey,
			c.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(c.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return newStore(client, c.S3Bucket, c.S3PublicBaseURL), nil
}

func newStore(client putObjectAPI, bucket, publicBase string) *S3Store {
	return &S3Store{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		now:        time.Now,
	}
}

// PutImage stores body under a generated key and returns the object's public URL.
func (s *S3Store) PutImage(ctx context.Context, contentType string, body []byte) (string, error) {
	key := NewKey(s.now(), contentType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *S3Store) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// NewKey returns uplatnice/<unix-millis>-<random>.<ext>.
func NewKey(now time.Time, contentType string) string {
	return fmt.Sprintf("%s/%d-%s.%s", keyPrefix, now.UnixMilli(), id.NewSuffix(6), Extension(contentType))
}

// Extension maps a declared image MIME type to a file extension, jpg when unknown.
func Extension(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "image/heic":
		return "heic"
	case "image/heif":
		return "heif"
	default:
		return "jpg"
	}
}
