package ports

import (
	"context"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// DatasetWriter persists a transformed dataset locally and returns the
// written file path.
type DatasetWriter interface {
	Write(ctx context.Context, ds domain.Dataset) (string, error)
}
