// Package covidapi fetches daily report totals from a covid-api compatible
// HTTP endpoint.
package covidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/ports"
)

const maxBodyBytes = 1 << 20 // 1MB; report payloads are tiny

type Fetcher struct {
	baseURL string
	client  *http.Client

	maxRetries  uint64
	initialWait time.Duration
}

type Option func(*Fetcher)

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n uint64) Option {
	return func(f *Fetcher) { f.maxRetries = n }
}

// WithInitialWait sets the first backoff interval (useful for tests).
func WithInitialWait(d time.Duration) Option {
	return func(f *Fetcher) { f.initialWait = d }
}

func New(baseURL string, client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:     baseURL,
		client:      client,
		maxRetries:  3,
		initialWait: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.ReportFetcher = (*Fetcher)(nil)

// FetchSeries pulls one report per day for `days` consecutive days ending at
// `end`, ascending. Days the API has no report for are skipped.
func (f *Fetcher) FetchSeries(ctx context.Context, iso string, end time.Time, days int) ([]domain.Report, error) {
	if days < 1 {
		return nil, &domain.OpError{
			Op:   "covidapi.fetch",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("days must be >= 1, got %d", days),
		}
	}

	reports := make([]domain.Report, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)

		rep, ok, err := f.fetchDay(ctx, iso, day)
		if err != nil {
			return nil, err
		}
		if ok {
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

func (f *Fetcher) fetchDay(ctx context.Context, iso string, day time.Time) (domain.Report, bool, error) {
	endpoint := fmt.Sprintf("%s/reports/total?%s", f.baseURL, url.Values{
		"iso":  {iso},
		"date": {day.Format(domain.DateLayout)},
	}.Encode())

	var (
		report    domain.Report
		found     bool
		permanent bool
	)

	// fail marks the error as not worth retrying so it can be classified
	// as an execution error after backoff.Retry unwraps it.
	fail := func(err error) error {
		permanent = true
		return backoff.Permanent(err)
	}

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fail(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			return err // network-level: retry
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			// No report published for this day.
			found = false
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return fail(fmt.Errorf("status %d", resp.StatusCode))
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return fail(fmt.Errorf("decode envelope: %w", err))
		}
		if emptyData(env.Data) {
			found = false
			return nil
		}

		rep, err := mapReport(env.Data, day)
		if err != nil {
			return fail(err)
		}

		report = rep
		found = true
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.initialWait

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, f.maxRetries), ctx))
	if err != nil {
		kind := domain.KindTransient
		if permanent {
			kind = domain.KindExecution
		}
		return domain.Report{}, false, &domain.OpError{
			Op:   "covidapi.fetch",
			Kind: kind,
			Path: endpoint,
			Err:  err,
		}
	}

	return report, found, nil
}
