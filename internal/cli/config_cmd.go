package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/envconfig"
)

// configView is the printable shape of a resolved configuration. AWS
// credentials are never part of it.
type configView struct {
	Workspace  string   `yaml:"workspace"`
	BaseAPIURL string   `yaml:"base_api_url"`
	Countries  []string `yaml:"countries"`
	Date       string   `yaml:"date"`
	WindowDays int      `yaml:"window_days"`

	Thresholds struct {
		Low    int64 `yaml:"low"`
		Medium int64 `yaml:"medium"`
		High   int64 `yaml:"high"`
	} `yaml:"risk_thresholds"`

	Extract map[string]string `yaml:"extract,omitempty"`

	S3 struct {
		Region      string `yaml:"region"`
		Bucket      string `yaml:"bucket"`
		KeyPrefix   string `yaml:"key_prefix"`
		EndpointURL string `yaml:"endpoint_url,omitempty"`
	} `yaml:"s3"`

	Paths struct {
		DataDir string `yaml:"data_dir"`
		RunsDir string `yaml:"runs_dir"`
		LogsDir string `yaml:"logs_dir"`
	} `yaml:"paths"`

	Upload bool `yaml:"upload"`
}

func configCmd() *cobra.Command {
	var workspace string
	var envFile string
	var date string
	var countries string

	c := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration (defaults < covidetl.yaml < env < flags)",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(workspace)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(root, envFile)
			if err != nil {
				return err
			}
			if date != "" {
				cfg.ReportDate = date
			}
			if countries != "" {
				cfg.Countries = envconfig.ParseCountries(countries)
			}

			b, err := yaml.Marshal(newConfigView(root, cfg))
			if err != nil {
				return err
			}
			fmt.Print(string(b))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: {workspace}/.env if present)")
	c.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD (overrides COVID_DATE)")
	c.Flags().StringVarP(&countries, "countries", "c", "", "Comma-separated ISO alpha-2 codes (overrides COUNTRIES)")

	return c
}

func newConfigView(root string, cfg domain.Config) configView {
	var v configView
	v.Workspace = root
	v.BaseAPIURL = cfg.BaseAPIURL
	v.Countries = cfg.Countries
	v.Date = cfg.ReportDate
	v.WindowDays = cfg.WindowDays
	v.Thresholds.Low = cfg.Thresholds.Low
	v.Thresholds.Medium = cfg.Thresholds.Medium
	v.Thresholds.High = cfg.Thresholds.High
	v.Extract = cfg.Extract
	v.S3.Region = cfg.AWS.Region
	v.S3.Bucket = cfg.AWS.Bucket
	v.S3.KeyPrefix = cfg.AWS.KeyPrefix
	v.S3.EndpointURL = cfg.AWS.EndpointURL
	v.Paths.DataDir = cfg.Paths.DataDir
	v.Paths.RunsDir = cfg.Paths.RunsDir
	v.Paths.LogsDir = cfg.Paths.LogsDir
	v.Upload = cfg.Upload
	return v
}
