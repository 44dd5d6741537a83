package ports

import (
	"context"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// ObjectUploader copies a local file to remote object storage under key.
type ObjectUploader interface {
	Upload(ctx context.Context, localPath, key string) (domain.UploadInfo, error)
}
