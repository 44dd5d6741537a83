// Package s3store uploads pipeline artifacts to S3. Credentials come from
// the SDK default chain (env, shared config, IMDS).
package s3store

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/ports"
)

const contentType = "application/octet-stream"

type Uploader struct {
	client S3API
	bucket string

	region    string
	endpoint  string
	timeout   time.Duration
	accessKey string
	secretKey string
}

type Option func(*Uploader)

// WithRegion overrides the region from the default credential chain.
func WithRegion(region string) Option {
	return func(u *Uploader) { u.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint, e.g.
// localstack. Path-style addressing is switched on alongside.
func WithEndpoint(url string) Option {
	return func(u *Uploader) { u.endpoint = url }
}

// WithTimeout bounds each PutObject call.
func WithTimeout(d time.Duration) Option {
	return func(u *Uploader) { u.timeout = d }
}

// WithStaticCredentials bypasses the default credential chain. Meant for
// S3-compatible endpoints; real AWS runs should leave this unset.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(u *Uploader) {
		u.accessKey = accessKey
		u.secretKey = secretKey
	}
}

// New builds an uploader against the real AWS SDK client.
func New(ctx context.Context, bucket string, opts ...Option) (*Uploader, error) {
	u := &Uploader{bucket: bucket}
	for _, opt := range opts {
		opt(u)
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "s3store.init",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	if u.region != "" {
		cfg.Region = u.region
	}
	if u.accessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(u.accessKey, u.secretKey, "")
	}

	var s3Opts []func(*s3.Options)
	if u.endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(u.endpoint)
			o.UsePathStyle = true
		})
	}
	if u.timeout > 0 {
		httpClient := &http.Client{Timeout: u.timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	u.client = s3.NewFromConfig(cfg, s3Opts...)
	return u, nil
}

// NewWithClient wires an existing S3API, used by tests.
func NewWithClient(client S3API, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

var _ ports.ObjectUploader = (*Uploader)(nil)

// Upload puts the file at localPath under key in the configured bucket.
func (u *Uploader) Upload(ctx context.Context, localPath, key string) (domain.UploadInfo, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.UploadInfo{}, u.wrap(localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.UploadInfo{}, u.wrap(localPath, err)
	}

	out, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return domain.UploadInfo{}, u.wrap(key, err)
	}

	up := domain.UploadInfo{
		Bucket: u.bucket,
		Key:    key,
		Bytes:  info.Size(),
	}
	if out.ETag != nil {
		up.ETag = *out.ETag
	}
	return up, nil
}

func (u *Uploader) wrap(path string, err error) error {
	return &domain.OpError{
		Op:   "s3store.upload",
		Kind: domain.KindTransient,
		Path: path,
		Err:  err,
	}
}
