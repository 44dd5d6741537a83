package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/covidapi"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/envconfig"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/httpclient"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/logger"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/parquetstore"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/runlog"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/s3store"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/ports"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/usecase"
)

func runCmd(debug *bool) *cobra.Command {
	var workspace string
	var envFile string
	var date string
	var countries string
	var window int
	var noUpload bool
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Fetch, transform and upload COVID data for the configured countries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(workspace)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(root, envFile)
			if err != nil {
				return err
			}

			// Flags win over file and environment.
			if date != "" {
				cfg.ReportDate = date
			}
			if countries != "" {
				cfg.Countries = envconfig.ParseCountries(countries)
			}
			if window > 0 {
				cfg.WindowDays = window
			}
			if noUpload {
				cfg.Upload = false
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			cleanup, lerr := logger.Setup(logger.Config{
				Dir:   filepath.Join(root, cfg.Paths.LogsDir),
				Debug: *debug,
			})
			if lerr != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", lerr)
			}
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}
			log := logger.L()

			fetcher := covidapi.New(cfg.BaseAPIURL, httpclient.New(httpclient.DefaultConfig()))
			writer := parquetstore.NewWriter(filepath.Join(root, cfg.Paths.DataDir))

			var uploader ports.ObjectUploader
			if cfg.Upload {
				up, err := s3store.New(cmd.Context(), cfg.AWS.Bucket,
					s3store.WithRegion(cfg.AWS.Region),
					s3store.WithEndpoint(cfg.AWS.EndpointURL),
					s3store.WithTimeout(60*time.Second),
				)
				if err != nil {
					return err
				}
				uploader = up
			}

			uc := usecase.NewRunPipeline(fetcher, writer, uploader, log)

			run, runErr := uc.Execute(cmd.Context(), cfg)

			var runID string
			if !noSave {
				store := runlog.NewJSONStore(root, cfg, runlog.WithIndex(true))
				id, serr := store.SaveRun(run)
				if serr != nil {
					log.Error("runlog.save.failed", "err", serr)
				} else {
					runID = id
				}
			}

			if perr := printRun(os.Stdout, run, runID, format); perr != nil {
				return perr
			}
			if runErr != nil {
				return runErr
			}

			if fails := run.Failures(); fails > 0 {
				return fmt.Errorf("run failed (%d of %d countries)", fails, len(run.Countries))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: {workspace}/.env if present)")
	c.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD (overrides COVID_DATE)")
	c.Flags().StringVarP(&countries, "countries", "c", "", "Comma-separated ISO alpha-2 codes (overrides COUNTRIES)")
	c.Flags().IntVar(&window, "window", 0, "Days of history ending at the report date")
	c.Flags().BoolVar(&noUpload, "no-upload", false, "Skip the S3 upload step")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a run summary under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	return c
}

func printRun(w io.Writer, run domain.RunSummary, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.RunSummary, runID string) {
	total := run.FinishedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Date:     %s\n", run.Date)
	fmt.Fprintf(w, "Window:   %d days\n", run.WindowDays)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", runID)
	}
	fmt.Fprintln(w)

	for _, c := range run.Countries {
		status := "OK"
		if c.Status == domain.CountryFailed {
			status = "FAIL"
		}

		fmt.Fprintf(w, "- [%s] %s\n", status, c.Country)

		if c.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", c.Error)
			continue
		}

		fmt.Fprintf(w, "  points: %d (confirmed=%d, new cases=%d)\n",
			c.Points, c.Totals.TotalConfirmed, c.Totals.TotalNewCases)
		if c.LocalPath != "" {
			fmt.Fprintf(w, "  local:  %s\n", c.LocalPath)
		}
		if c.ObjectKey != "" {
			fmt.Fprintf(w, "  s3:     %s\n", c.ObjectKey)
		}
	}
}
