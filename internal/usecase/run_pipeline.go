package usecase

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/ports"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/usecase/transform"
)

// RunPipeline orchestrates the fetch -> transform -> write -> upload flow
// for every configured country.
type RunPipeline struct {
	fetcher  ports.ReportFetcher
	writer   ports.DatasetWriter
	uploader ports.ObjectUploader // nil when uploads are disabled
	log      *slog.Logger
}

func NewRunPipeline(f ports.ReportFetcher, w ports.DatasetWriter, u ports.ObjectUploader, log *slog.Logger) *RunPipeline {
	if log == nil {
		log = slog.Default()
	}
	return &RunPipeline{
		fetcher:  f,
		writer:   w,
		uploader: u,
		log:      log,
	}
}

// Execute runs the pipeline for cfg.Countries. A failure in one country is
// recorded in the summary and the loop continues; only context cancellation
// aborts the run. The returned error is nil unless the run was aborted.
func (uc *RunPipeline) Execute(ctx context.Context, cfg domain.Config) (domain.RunSummary, error) {
	run := domain.RunSummary{
		Date:       cfg.ReportDate,
		WindowDays: cfg.WindowDays,
		StartedAt:  time.Now(),
		Countries:  make([]domain.CountrySummary, 0, len(cfg.Countries)),
	}

	end, err := cfg.Date()
	if err != nil {
		run.FinishedAt = time.Now()
		return run, err
	}

	for _, iso := range cfg.Countries {
		if ctx.Err() != nil {
			run.FinishedAt = time.Now()
			return run, ctx.Err()
		}

		cs := uc.runCountry(ctx, cfg, iso, end)
		run.Countries = append(run.Countries, cs)

		if cs.Status == domain.CountryFailed && ctx.Err() != nil {
			run.FinishedAt = time.Now()
			return run, ctx.Err()
		}
	}

	run.FinishedAt = time.Now()
	return run, nil
}

func (uc *RunPipeline) runCountry(ctx context.Context, cfg domain.Config, iso string, end time.Time) domain.CountrySummary {
	cs := domain.CountrySummary{Country: iso, Status: domain.CountryOK}

	uc.log.Info("pipeline.country.start", "country", iso, "date", cfg.ReportDate, "window_days", cfg.WindowDays)

	reports, err := uc.fetcher.FetchSeries(ctx, iso, end, cfg.WindowDays)
	if err != nil {
		uc.log.Error("pipeline.fetch.failed", "country", iso, "err", err)
		cs.Status = domain.CountryFailed
		cs.Error = err.Error()
		return cs
	}
	if len(reports) == 0 {
		uc.log.Warn("pipeline.fetch.empty", "country", iso, "date", cfg.ReportDate)
	}

	ds := transform.Build(iso, cfg.ReportDate, reports, cfg.Thresholds, cfg.Extract)
	cs.Points = len(ds.Points)
	cs.Totals = ds.Totals

	localPath, err := uc.writer.Write(ctx, ds)
	if err != nil {
		uc.log.Error("pipeline.write.failed", "country", iso, "err", err)
		cs.Status = domain.CountryFailed
		cs.Error = err.Error()
		return cs
	}
	cs.LocalPath = localPath
	uc.log.Info("pipeline.write.ok", "country", iso, "path", localPath, "points", len(ds.Points))

	if !cfg.Upload || uc.uploader == nil {
		return cs
	}

	key := path.Join(cfg.AWS.KeyPrefix, iso, cfg.ReportDate+".parquet")
	info, err := uc.uploader.Upload(ctx, localPath, key)
	if err != nil {
		uc.log.Error("pipeline.upload.failed", "country", iso, "key", key, "err", err)
		cs.Status = domain.CountryFailed
		cs.Error = err.Error()
		return cs
	}
	cs.ObjectKey = info.Key
	uc.log.Info("pipeline.upload.ok", "country", iso, "bucket", info.Bucket, "key", info.Key, "bytes", info.Bytes)

	return cs
}
