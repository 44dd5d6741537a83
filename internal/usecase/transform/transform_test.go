package transform

import (
	"testing"
	"time"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestBuildComputesSeries(t *testing.T) {
	th := domain.RiskThresholds{Low: 10, Medium: 50, High: 100}

	reports := []domain.Report{
		{Date: day(t, "2023-09-01"), Confirmed: 100, Deaths: 2},
		{Date: day(t, "2023-09-02"), Confirmed: 160, Deaths: 3},
		{Date: day(t, "2023-09-03"), Confirmed: 300, Deaths: 3},
	}

	ds := Build("MX", "2023-09-03", reports, th, nil)

	if ds.Country != "MX" || ds.DateLabel != "2023-09-03" {
		t.Fatalf("unexpected dataset identity: %+v", ds)
	}
	if len(ds.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(ds.Points))
	}

	p0 := ds.Points[0]
	if p0.NewCases != 100 || p0.PrevConfirmed != 0 || p0.GrowthRate != 0 {
		t.Fatalf("first point: %+v", p0)
	}
	if p0.Risk != domain.RiskMedium {
		t.Fatalf("first point risk = %s, want medium", p0.Risk)
	}

	p1 := ds.Points[1]
	if p1.NewCases != 60 || p1.PrevConfirmed != 100 {
		t.Fatalf("second point: %+v", p1)
	}
	if p1.GrowthRate != 0.6 {
		t.Fatalf("second point growth = %v, want 0.6", p1.GrowthRate)
	}
	if p1.Risk != domain.RiskMedium {
		t.Fatalf("second point risk = %s, want medium", p1.Risk)
	}

	p2 := ds.Points[2]
	if p2.NewCases != 140 || p2.Risk != domain.RiskHigh {
		t.Fatalf("third point: %+v", p2)
	}

	if ds.Totals.TotalConfirmed != 300 {
		t.Fatalf("total confirmed = %d, want 300", ds.Totals.TotalConfirmed)
	}
	if ds.Totals.TotalNewCases != 300 {
		t.Fatalf("total new cases = %d, want 300", ds.Totals.TotalNewCases)
	}
}

func TestBuildSortsByDate(t *testing.T) {
	th := domain.DefaultRiskThresholds()
	reports := []domain.Report{
		{Date: day(t, "2023-09-03"), Confirmed: 30},
		{Date: day(t, "2023-09-01"), Confirmed: 10},
		{Date: day(t, "2023-09-02"), Confirmed: 20},
	}

	ds := Build("CO", "2023-09-03", reports, th, nil)

	for i, want := range []string{"2023-09-01", "2023-09-02", "2023-09-03"} {
		if got := ds.Points[i].Date.Format(domain.DateLayout); got != want {
			t.Fatalf("point %d date = %s, want %s", i, got, want)
		}
	}
	if ds.Points[1].NewCases != 10 || ds.Points[2].NewCases != 10 {
		t.Fatalf("differencing must follow sorted order: %+v", ds.Points)
	}
}

func TestBuildGrowthGuardedAgainstZeroPrev(t *testing.T) {
	th := domain.DefaultRiskThresholds()
	reports := []domain.Report{
		{Date: day(t, "2023-09-01"), Confirmed: 0},
		{Date: day(t, "2023-09-02"), Confirmed: 40},
	}

	ds := Build("PE", "2023-09-02", reports, th, nil)
	if ds.Points[1].GrowthRate != 0 {
		t.Fatalf("expected growth 0 with prev=0, got %v", ds.Points[1].GrowthRate)
	}
}

func TestBuildEmptySeries(t *testing.T) {
	ds := Build("MX", "2023-09-01", nil, domain.DefaultRiskThresholds(), nil)
	if len(ds.Points) != 0 {
		t.Fatalf("expected empty dataset")
	}
	if ds.Totals.TotalConfirmed != 0 || ds.Totals.TotalNewCases != 0 {
		t.Fatalf("expected zero totals, got %+v", ds.Totals)
	}
}

func TestBuildAppliesExtractRules(t *testing.T) {
	reports := []domain.Report{
		{
			Date:      day(t, "2023-09-01"),
			Confirmed: 5,
			Raw: map[string]any{
				"region": map[string]any{"name": "Mexico"},
			},
		},
	}

	ds := Build("MX", "2023-09-01", reports, domain.DefaultRiskThresholds(), domain.ExtractRules{
		"region_name": "$.region.name",
	})

	if got := ds.Points[0].Extra["region_name"]; got != "Mexico" {
		t.Fatalf("expected extracted column, got %q", got)
	}
}
