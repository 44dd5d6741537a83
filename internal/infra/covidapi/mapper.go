package covidapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

func mapReport(raw json.RawMessage, fallbackDate time.Time) (domain.Report, error) {
	var dto reportDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Report{}, fmt.Errorf("decode report: %w", err)
	}

	date := fallbackDate
	if dto.Date != "" {
		d, err := time.Parse(domain.DateLayout, dto.Date)
		if err != nil {
			return domain.Report{}, fmt.Errorf("report date %q: %w", dto.Date, err)
		}
		date = d
	}

	// Keep the decoded object around for extract rules.
	var rawObj map[string]any
	if err := json.Unmarshal(raw, &rawObj); err != nil {
		rawObj = nil
	}

	return domain.Report{
		Date:         date,
		Confirmed:    dto.Confirmed,
		Deaths:       dto.Deaths,
		Recovered:    dto.Recovered,
		Active:       dto.Active,
		FatalityRate: dto.FatalityRate,
		Raw:          rawObj,
	}, nil
}
