package s3store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

type mockS3 struct {
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putObjectFunc(ctx, params, optFns...)
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2023-09-01.parquet")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpload(t *testing.T) {
	var gotInput *s3.PutObjectInput
	var gotBody []byte

	mock := &mockS3{
		putObjectFunc: func(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			gotInput = params
			b, err := io.ReadAll(params.Body)
			require.NoError(t, err)
			gotBody = b
			return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
		},
	}

	u := NewWithClient(mock, "covid-bucket")
	path := writeTempFile(t, "parquet-bytes")

	info, err := u.Upload(context.Background(), path, "covid_data/MX/2023-09-01.parquet")
	require.NoError(t, err)

	assert.Equal(t, "covid-bucket", aws.ToString(gotInput.Bucket))
	assert.Equal(t, "covid_data/MX/2023-09-01.parquet", aws.ToString(gotInput.Key))
	assert.Equal(t, contentType, aws.ToString(gotInput.ContentType))
	assert.Equal(t, "parquet-bytes", string(gotBody))

	assert.Equal(t, "covid-bucket", info.Bucket)
	assert.Equal(t, "covid_data/MX/2023-09-01.parquet", info.Key)
	assert.Equal(t, `"abc123"`, info.ETag)
	assert.Equal(t, int64(len("parquet-bytes")), info.Bytes)
}

func TestNewAppliesOptions(t *testing.T) {
	u, err := New(context.Background(), "covid-bucket",
		WithRegion("us-east-1"),
		WithEndpoint("http://localhost:4566"),
		WithStaticCredentials("test", "test"),
		WithTimeout(time.Second),
	)
	require.NoError(t, err)
	require.NotNil(t, u.client)
	assert.Equal(t, "covid-bucket", u.bucket)
}

func TestUploadMissingFile(t *testing.T) {
	mock := &mockS3{
		putObjectFunc: func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			t.Fatal("PutObject should not be called")
			return nil, nil
		},
	}

	u := NewWithClient(mock, "covid-bucket")

	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"), "k")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindTransient))
}

func TestUploadPutObjectFails(t *testing.T) {
	mock := &mockS3{
		putObjectFunc: func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("access denied")
		},
	}

	u := NewWithClient(mock, "covid-bucket")
	path := writeTempFile(t, "x")

	_, err := u.Upload(context.Background(), path, "covid_data/MX/2023-09-01.parquet")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindTransient))
	assert.Contains(t, err.Error(), "access denied")
}
