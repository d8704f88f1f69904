// Package s3 reads objects and presigns download URLs on S3-compatible storage (MinIO, AWS).
package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kailas-cloud/talentbridge/internal/domain"
)

var tracer = otel.Tracer("github.com/kailas-cloud/talentbridge/internal/storage/s3")

// Config holds object storage settings.
type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ObjectAPI is the subset of *s3.Client used here.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Presigner produces time-limited download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// sdkPresigner adapts *s3.PresignClient to Presigner.
type sdkPresigner struct {
	client *s3.PresignClient
}

func (p sdkPresigner) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped by Client.PresignGet
	}
	return req.URL, nil
}

// Object is a fetched object body with its content type.
type Object struct {
	Data        []byte
	ContentType string
}

// Client wraps S3 object reads and presigning for one bucket.
type Client struct {
	api     ObjectAPI
	presign Presigner
	bucket  string
}

// New creates a client. Static credentials are used when both keys are set, otherwise
// the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Client{
		api:     client,
		presign: sdkPresigner{s3.NewPresignClient(client)},
		bucket:  cfg.Bucket,
	}, nil
}

// NewForTest creates a Client over the given API fakes (test-only).
func NewForTest(api ObjectAPI, p Presigner, bucket string) *Client {
	return &Client{api: api, presign: p, bucket: bucket}
}

// PresignGet returns a time-limited download URL for key.
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := c.presign.PresignGet(ctx, c.bucket, key, ttl)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	return url, nil
}

// Get downloads the object stored at key.
func (c *Client) Get(ctx context.Context, key string) (Object, error) {
	ctx, span := tracer.Start(ctx, "S3.GetObject",
		trace.WithAttributes(
			attribute.String("s3.bucket", c.bucket),
			attribute.String("s3.key", key),
		),
	)
	defer span.End()

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get object failed")
		return Object{}, fmt.Errorf("get %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read object failed")
		return Object{}, fmt.Errorf("read %s: %w", key, err)
	}
	span.SetAttributes(attribute.Int("content.size", len(data)))

	return Object{Data: data, ContentType: aws.ToString(out.ContentType)}, nil
}

// Ping checks that the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", c.bucket, err)
	}
	return nil
}
