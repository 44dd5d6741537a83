package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and file format for report dates.
const DateLayout = "2006-01-02"

// ExtractRules maps an output column name to a JSONPath expression applied
// to each raw report object.
type ExtractRules map[string]string

// Config is the fully resolved pipeline configuration.
// Layering (defaults < covidetl.yaml < env < flags) happens in infra/cli;
// the domain only validates the end result.
type Config struct {
	BaseAPIURL string
	Countries  []string
	ReportDate string // YYYY-MM-DD
	WindowDays int

	Thresholds RiskThresholds
	Extract    ExtractRules

	AWS    AWSConfig
	Paths  PathsConfig
	Upload bool
}

// AWSConfig carries the S3 destination. Credentials are not modeled here:
// they flow through the SDK default chain (env, shared config, IMDS).
type AWSConfig struct {
	Region      string
	Bucket      string
	KeyPrefix   string
	EndpointURL string // Optional override, e.g. localstack
}

type PathsConfig struct {
	DataDir string
	RunsDir string
	LogsDir string
}

// DefaultConfig mirrors the documented environment defaults.
func DefaultConfig() Config {
	return Config{
		BaseAPIURL: "https://covid-api.com/api",
		Countries:  []string{"MX", "CO", "PE"},
		ReportDate: "2023-09-01",
		WindowDays: 30,
		Thresholds: DefaultRiskThresholds(),
		Extract:    ExtractRules{},
		AWS: AWSConfig{
			Region:    "us-east-1",
			KeyPrefix: "covid_data",
		},
		Paths: PathsConfig{
			DataDir: "data",
			RunsDir: "runs",
			LogsDir: "logs",
		},
		Upload: true,
	}
}

// Date parses ReportDate.
func (c Config) Date() (time.Time, error) {
	d, err := time.Parse(DateLayout, c.ReportDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("report date %q: %w", c.ReportDate, ErrInvalidConfig)
	}
	return d, nil
}

// Validate checks the resolved configuration before a run.
func (c Config) Validate() error {
	if c.BaseAPIURL == "" {
		return fmt.Errorf("base API URL is required: %w", ErrInvalidConfig)
	}
	if len(c.Countries) == 0 {
		return fmt.Errorf("at least one country is required: %w", ErrInvalidConfig)
	}
	for _, iso := range c.Countries {
		if !validISO(iso) {
			return fmt.Errorf("country %q is not an ISO-3166-1 alpha-2 code: %w", iso, ErrInvalidConfig)
		}
	}
	if _, err := c.Date(); err != nil {
		return err
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("window must be >= 1 day, got %d: %w", c.WindowDays, ErrInvalidConfig)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Upload && c.AWS.Bucket == "" {
		return fmt.Errorf("S3 bucket is required when upload is enabled: %w", ErrInvalidConfig)
	}
	return nil
}

// NormalizeCountries trims and upper-cases country codes, dropping empty
// entries. Every config source runs its list through this so `mx` and
// ` MX ` mean the same country.
func NormalizeCountries(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func validISO(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// WorkspaceSpec describes a pipeline directory to scaffold.
type WorkspaceSpec struct {
	Root string
}
