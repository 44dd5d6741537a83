package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

func sampleRun() domain.RunSummary {
	start := time.Date(2023, 9, 2, 10, 0, 0, 0, time.UTC)
	return domain.RunSummary{
		Date:       "2023-09-01",
		WindowDays: 30,
		StartedAt:  start,
		FinishedAt: start.Add(8 * time.Second),
		Countries: []domain.CountrySummary{
			{
				Country:   "MX",
				Status:    domain.CountryOK,
				Points:    30,
				Totals:    domain.CountryTotals{TotalConfirmed: 1000, TotalNewCases: 120},
				LocalPath: "data/MX/2023-09-01.parquet",
				ObjectKey: "covid_data/MX/2023-09-01.parquet",
			},
			{
				Country: "CO",
				Status:  domain.CountryFailed,
				Error:   "fetch: status 500",
			},
		},
	}
}

func TestPrintRun_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "20230902T100000Z_2023-09-01", "pretty"); err != nil {
		t.Fatalf("printRun error: %v", err)
	}

	out := buf.String()
	wants := []string{
		"Date:     2023-09-01",
		"Run ID:   20230902T100000Z_2023-09-01",
		"- [OK] MX",
		"s3:     covid_data/MX/2023-09-01.parquet",
		"- [FAIL] CO",
		"error: fetch: status 500",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestPrintRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "run-1", "json"); err != nil {
		t.Fatalf("printRun error: %v", err)
	}

	var payload struct {
		RunID string            `json:"run_id"`
		Run   domain.RunSummary `json:"run"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if payload.RunID != "run-1" {
		t.Fatalf("run_id = %q", payload.RunID)
	}
	if len(payload.Run.Countries) != 2 || payload.Run.Failures() != 1 {
		t.Fatalf("run = %+v", payload.Run)
	}
}

func TestPrintRun_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestResolveWorkspaceRoot_FlagWins(t *testing.T) {
	tmp := t.TempDir()

	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("resolveWorkspaceRoot error: %v", err)
	}
	want, _ := filepath.Abs(tmp)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestLoadConfig_Layering(t *testing.T) {
	tmp := t.TempDir()

	yaml := "countries: [BR]\ndate: 2024-01-01\ns3:\n  bucket: yaml-bucket\n"
	if err := os.WriteFile(filepath.Join(tmp, "covidetl.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	// Environment overrides the file.
	t.Setenv("COVID_DATE", "2024-02-02")
	t.Setenv("S3_BUCKET_NAME", "")
	os.Unsetenv("S3_BUCKET_NAME")
	for _, v := range []string{"BASE_API_URL", "COUNTRIES", "COVID_WINDOW_DAYS", "AWS_DEFAULT_REGION", "S3_ENDPOINT_URL"} {
		t.Setenv(v, "")
	}

	cfg, err := loadConfig(tmp, "")
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}

	if cfg.ReportDate != "2024-02-02" {
		t.Fatalf("date = %q (env should win over yaml)", cfg.ReportDate)
	}
	if len(cfg.Countries) != 1 || cfg.Countries[0] != "BR" {
		t.Fatalf("countries = %v (yaml should win over defaults)", cfg.Countries)
	}
	if cfg.AWS.Bucket != "yaml-bucket" {
		t.Fatalf("bucket = %q", cfg.AWS.Bucket)
	}
	if cfg.WindowDays != domain.DefaultConfig().WindowDays {
		t.Fatalf("window = %d (default expected)", cfg.WindowDays)
	}
}

func TestLoadConfig_ExplicitEnvFile(t *testing.T) {
	tmp := t.TempDir()

	envPath := filepath.Join(tmp, "custom.env")
	if err := os.WriteFile(envPath, []byte("COUNTRIES=cl\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, v := range []string{"BASE_API_URL", "COUNTRIES", "COVID_DATE", "COVID_WINDOW_DAYS", "AWS_DEFAULT_REGION", "S3_BUCKET_NAME", "S3_ENDPOINT_URL"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := loadConfig(tmp, envPath)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if len(cfg.Countries) != 1 || cfg.Countries[0] != "CL" {
		t.Fatalf("countries = %v", cfg.Countries)
	}

	if _, err := loadConfig(tmp, filepath.Join(tmp, "missing.env")); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}
