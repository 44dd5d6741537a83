// Package transform turns a raw report series into the dataset the pipeline
// persists: per-day new cases, growth rate, risk level and country totals.
package transform

import (
	"sort"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/usecase/extract"
)

// Build computes the transformed dataset for one country.
//
// Rules:
// - Reports are ordered by date ascending before differencing.
// - The first day's new cases equal its confirmed count (no previous day).
// - Growth rate is new/prev, and 0 when prev <= 0.
// - Risk is classified from new cases against the thresholds.
// - Totals: max confirmed and sum of new cases over the series.
//
// An empty series yields an empty dataset with zero totals.
func Build(country, dateLabel string, reports []domain.Report, th domain.RiskThresholds, rules domain.ExtractRules) domain.Dataset {
	ds := domain.Dataset{
		Country:   country,
		DateLabel: dateLabel,
		Points:    make([]domain.SeriesPoint, 0, len(reports)),
	}
	if len(reports) == 0 {
		return ds
	}

	ordered := make([]domain.Report, len(reports))
	copy(ordered, reports)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var prev int64
	for i, rep := range ordered {
		newCases := rep.Confirmed
		if i > 0 {
			newCases = rep.Confirmed - prev
		}

		var growth float64
		if prev > 0 {
			growth = float64(newCases) / float64(prev)
		}

		p := domain.SeriesPoint{
			Date:          rep.Date,
			Country:       country,
			Confirmed:     rep.Confirmed,
			Deaths:        rep.Deaths,
			Recovered:     rep.Recovered,
			Active:        rep.Active,
			NewCases:      newCases,
			PrevConfirmed: prev,
			GrowthRate:    growth,
			Risk:          th.Classify(newCases),
			Extra:         extract.Columns(rep.Raw, rules),
		}
		ds.Points = append(ds.Points, p)

		if rep.Confirmed > ds.Totals.TotalConfirmed {
			ds.Totals.TotalConfirmed = rep.Confirmed
		}
		ds.Totals.TotalNewCases += newCases

		prev = rep.Confirmed
	}

	return ds
}
