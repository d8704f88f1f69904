package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kailas-cloud/talentbridge/internal/domain"
)

type fakeObjects struct {
	body        string
	contentType string
	err         error
	headErr     error
	lastKey     string
}

func (f *fakeObjects) GetObject(
	_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(f.body)),
		ContentType: aws.String(f.contentType),
	}, nil
}

func (f *fakeObjects) HeadBucket(
	_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

type fakePresigner struct {
	err     error
	lastTTL time.Duration
}

func (f *fakePresigner) PresignGet(_ context.Context, bucket, key string, ttl time.Duration) (string, error) {
	f.lastTTL = ttl
	if f.err != nil {
		return "", f.err
	}
	return "https://minio.local/" + bucket + "/" + key + "?X-Amz-Signature=abc", nil
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet(t *testing.T) {
	objs := &fakeObjects{body: "PNGDATA", contentType: "image/png"}
	c := NewForTest(objs, &fakePresigner{}, "assets")

	obj, err := c.Get(context.Background(), "logos/sena.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(obj.Data) != "PNGDATA" || obj.ContentType != "image/png" {
		t.Errorf("unexpected object: %+v", obj)
	}
	if objs.lastKey != "logos/sena.png" {
		t.Errorf("key = %q", objs.lastKey)
	}
}

func TestGet_Error(t *testing.T) {
	c := NewForTest(&fakeObjects{err: errors.New("NoSuchKey")}, &fakePresigner{}, "assets")

	_, err := c.Get(context.Background(), "missing.png")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPresignGet(t *testing.T) {
	p := &fakePresigner{}
	c := NewForTest(&fakeObjects{}, p, "assets")

	url, err := c.PresignGet(context.Background(), "logos/acme.png", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "https://minio.local/assets/logos/acme.png") {
		t.Errorf("url = %s", url)
	}
	if p.lastTTL != 15*time.Minute {
		t.Errorf("ttl = %v", p.lastTTL)
	}
}

func TestPresignGet_Error(t *testing.T) {
	c := NewForTest(&fakeObjects{}, &fakePresigner{err: errors.New("no credentials")}, "assets")

	if _, err := c.PresignGet(context.Background(), "k", time.Minute); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPing(t *testing.T) {
	c := NewForTest(&fakeObjects{headErr: errors.New("forbidden")}, &fakePresigner{}, "assets")
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
