package ports

import (
	"context"
	"time"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// ReportFetcher retrieves the daily report series for one country.
// The series covers `days` consecutive days ending at `end`, in ascending
// date order. Days the source has no data for are simply absent.
type ReportFetcher interface {
	FetchSeries(ctx context.Context, iso string, end time.Time, days int) ([]domain.Report, error)
}
