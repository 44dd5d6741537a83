package domain

import "time"

// Report is one day of country-level COVID data as returned by the API.
type Report struct {
	Date         time.Time
	Confirmed    int64
	Deaths       int64
	Recovered    int64
	Active       int64
	FatalityRate float64

	// Raw is the decoded JSON object for this day. It is kept alongside the
	// typed fields so extra columns can be pulled out with extract rules.
	Raw map[string]any
}

// SeriesPoint is one transformed row, ready to be persisted.
type SeriesPoint struct {
	Date          time.Time
	Country       string
	Confirmed     int64
	Deaths        int64
	Recovered     int64
	Active        int64
	NewCases      int64
	PrevConfirmed int64
	GrowthRate    float64
	Risk          RiskLevel

	// Extra holds user-configured columns extracted from the raw payload.
	Extra map[string]string
}

// CountryTotals aggregates a country's series.
type CountryTotals struct {
	TotalConfirmed int64 `json:"total_confirmed"`
	TotalNewCases  int64 `json:"total_new_cases"`
}

// Dataset is the transformed series for one country, keyed by the report
// date label used for file and object naming.
type Dataset struct {
	Country   string
	DateLabel string
	Points    []SeriesPoint
	Totals    CountryTotals
}
