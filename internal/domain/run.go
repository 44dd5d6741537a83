package domain

import "time"

// CountryStatus is the outcome of one country's pass through the pipeline.
type CountryStatus string

const (
	CountryOK     CountryStatus = "ok"
	CountryFailed CountryStatus = "failed"
)

// UploadInfo describes a completed S3 upload.
type UploadInfo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	ETag   string `json:"etag,omitempty"`
	Bytes  int64  `json:"bytes"`
}

// CountrySummary records one country's result within a run.
type CountrySummary struct {
	Country   string        `json:"country"`
	Status    CountryStatus `json:"status"`
	Points    int           `json:"points"`
	Totals    CountryTotals `json:"totals"`
	LocalPath string        `json:"local_path,omitempty"`
	ObjectKey string        `json:"object_key,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// RunSummary is the persisted artifact for one pipeline run.
type RunSummary struct {
	Date       string    `json:"date"`
	WindowDays int       `json:"window_days"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Countries []CountrySummary `json:"countries"`
}

// Failures counts countries that did not complete.
func (r RunSummary) Failures() int {
	n := 0
	for _, c := range r.Countries {
		if c.Status == CountryFailed {
			n++
		}
	}
	return n
}
