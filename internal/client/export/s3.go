package export

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	clientcfg "github.com/dmitrijs2005/notehub/internal/client/config"
	"github.com/dmitrijs2005/notehub/internal/filex"
	"github.com/dmitrijs2005/notehub/internal/netx"
)

// PresignExpiry bounds the lifetime of the upload and share URLs.
const PresignExpiry = 15 * time.Minute

// presigner is the subset of *s3.PresignClient used by S3Sink.
type presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Sink uploads files to Bucket under Prefix through a presigned PUT and
// returns a presigned GET URL that can be shared.
type S3Sink struct {
	bucket  string
	prefix  string
	presign presigner
	http    *http.Client
	now     func() time.Time
}

// NewS3Sink builds a sink from cfg. Static credentials are used when both
// keys are set, otherwise the default AWS credential chain. A custom
// Endpoint switches to path-style addressing, as MinIO expects.
func NewS3Sink(ctx context.Context, cfg clientcfg.S3Config, hc *http.Client) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 export: bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Sink(cfg.Bucket, cfg.Prefix, s3.NewPresignClient(client), hc), nil
}

func newS3Sink(bucket, prefix string, p presigner, hc *http.Client) *S3Sink {
	return &S3Sink{bucket: bucket, prefix: prefix, presign: p, http: hc, now: time.Now}
}

// Key returns the object key name is stored under.
func (s *S3Sink) Key(name string) string {
	return path.Join(s.prefix, s.now().UTC().Format("2006/01/02"), filex.SafeName(name, "download"))
}

func (s *S3Sink) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := s.Key(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	put, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}

	if err := netx.PutPresigned(ctx, s.http, put.URL, data, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	get, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return get.URL, nil
}

var _ Sink = (*S3Sink)(nil)
