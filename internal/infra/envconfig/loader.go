// Package envconfig applies process environment variables (optionally
// seeded from a .env file) on top of a pipeline configuration.
package envconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// Variables recognized by the pipeline. AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY are intentionally not read here: the SDK's default
// credential chain picks them up.
const (
	VarBaseAPIURL = "BASE_API_URL"
	VarRegion     = "AWS_DEFAULT_REGION"
	VarBucket     = "S3_BUCKET_NAME"
	VarDate       = "COVID_DATE"
	VarCountries  = "COUNTRIES"
	VarWindowDays = "COVID_WINDOW_DAYS"
	VarEndpoint   = "S3_ENDPOINT_URL"
)

// LoadDotenv loads a .env file into the process environment. Existing
// variables win. A missing file is not an error when path is the implicit
// default; an explicitly requested file must exist.
func LoadDotenv(path string, explicit bool) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return &domain.OpError{
			Op:   "envconfig.dotenv",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	if err := godotenv.Load(path); err != nil {
		return &domain.OpError{
			Op:   "envconfig.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Apply overlays environment variables onto cfg and returns the result.
// Values are only parsed here; domain.Config.Validate does the checking.
func Apply(cfg domain.Config) (domain.Config, error) {
	if v, ok := lookup(VarBaseAPIURL); ok {
		cfg.BaseAPIURL = strings.TrimRight(v, "/")
	}
	if v, ok := lookup(VarRegion); ok {
		cfg.AWS.Region = v
	}
	if v, ok := lookup(VarBucket); ok {
		cfg.AWS.Bucket = v
	}
	if v, ok := lookup(VarEndpoint); ok {
		cfg.AWS.EndpointURL = v
	}
	if v, ok := lookup(VarDate); ok {
		cfg.ReportDate = v
	}
	if v, ok := lookup(VarCountries); ok {
		cfg.Countries = ParseCountries(v)
	}
	if v, ok := lookup(VarWindowDays); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "envconfig.apply",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%s=%q: %w", VarWindowDays, v, err),
			}
		}
		cfg.WindowDays = n
	}
	return cfg, nil
}

// ParseCountries splits a comma-separated country list and normalizes each
// code. Empty entries are dropped.
func ParseCountries(s string) []string {
	return domain.NormalizeCountries(strings.Split(s, ","))
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
