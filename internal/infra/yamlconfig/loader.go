// Package yamlconfig reads the optional covidetl.yaml project file and
// overlays it onto a base configuration.
package yamlconfig

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// ConfigFile is the well-known project file name.
const ConfigFile = "covidetl.yaml"

type yamlFile struct {
	BaseAPIURL string   `yaml:"base_api_url"`
	Countries  []string `yaml:"countries"`
	Date       string   `yaml:"date"`
	WindowDays *int     `yaml:"window_days"`

	Thresholds *yamlThresholds   `yaml:"risk_thresholds"`
	Extract    map[string]string `yaml:"extract"`

	S3     *yamlS3    `yaml:"s3"`
	Paths  *yamlPaths `yaml:"paths"`
	Upload *bool      `yaml:"upload"`
}

type yamlThresholds struct {
	Low    *int64 `yaml:"low"`
	Medium *int64 `yaml:"medium"`
	High   *int64 `yaml:"high"`
}

type yamlS3 struct {
	Region      string `yaml:"region"`
	Bucket      string `yaml:"bucket"`
	KeyPrefix   string `yaml:"key_prefix"`
	EndpointURL string `yaml:"endpoint_url"`
}

type yamlPaths struct {
	DataDir string `yaml:"data_dir"`
	RunsDir string `yaml:"runs_dir"`
	LogsDir string `yaml:"logs_dir"`
}

// Apply overlays path's contents onto cfg. A missing file leaves cfg
// untouched; a present but malformed file is an error.
func Apply(cfg domain.Config, path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "yamlconfig.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var y yamlFile
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "yamlconfig.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return merge(cfg, y), nil
}

func merge(cfg domain.Config, y yamlFile) domain.Config {
	if y.BaseAPIURL != "" {
		cfg.BaseAPIURL = strings.TrimRight(y.BaseAPIURL, "/")
	}
	if len(y.Countries) > 0 {
		cfg.Countries = domain.NormalizeCountries(y.Countries)
	}
	if y.Date != "" {
		cfg.ReportDate = y.Date
	}
	if y.WindowDays != nil {
		cfg.WindowDays = *y.WindowDays
	}

	if y.Thresholds != nil {
		if y.Thresholds.Low != nil {
			cfg.Thresholds.Low = *y.Thresholds.Low
		}
		if y.Thresholds.Medium != nil {
			cfg.Thresholds.Medium = *y.Thresholds.Medium
		}
		if y.Thresholds.High != nil {
			cfg.Thresholds.High = *y.Thresholds.High
		}
	}
	if len(y.Extract) > 0 {
		if cfg.Extract == nil {
			cfg.Extract = domain.ExtractRules{}
		}
		for col, rule := range y.Extract {
			cfg.Extract[col] = rule
		}
	}

	if y.S3 != nil {
		if y.S3.Region != "" {
			cfg.AWS.Region = y.S3.Region
		}
		if y.S3.Bucket != "" {
			cfg.AWS.Bucket = y.S3.Bucket
		}
		if y.S3.KeyPrefix != "" {
			cfg.AWS.KeyPrefix = y.S3.KeyPrefix
		}
		if y.S3.EndpointURL != "" {
			cfg.AWS.EndpointURL = y.S3.EndpointURL
		}
	}
	if y.Paths != nil {
		if y.Paths.DataDir != "" {
			cfg.Paths.DataDir = y.Paths.DataDir
		}
		if y.Paths.RunsDir != "" {
			cfg.Paths.RunsDir = y.Paths.RunsDir
		}
		if y.Paths.LogsDir != "" {
			cfg.Paths.LogsDir = y.Paths.LogsDir
		}
	}
	if y.Upload != nil {
		cfg.Upload = *y.Upload
	}

	return cfg
}
