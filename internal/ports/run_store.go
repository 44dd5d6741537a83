package ports

import "github.com/Jquirozp0/etl-covid-pipeline/internal/domain"

// RunStore persists run summaries for reproducibility.
type RunStore interface {
	SaveRun(run domain.RunSummary) (id string, err error)
}
