// Package parquetstore persists transformed datasets as parquet files under
// the local data directory.
package parquetstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/ports"
)

// Row is the on-disk parquet schema, one row per day.
type Row struct {
	Date          string  `parquet:"date"`
	Country       string  `parquet:"country"`
	Confirmed     int64   `parquet:"confirmed"`
	Deaths        int64   `parquet:"deaths"`
	Recovered     int64   `parquet:"recovered"`
	Active        int64   `parquet:"active"`
	NewCases      int64   `parquet:"new_cases"`
	PrevConfirmed int64   `parquet:"prev_confirmed"`
	GrowthRate    float64 `parquet:"growth_rate"`
	Risk          string  `parquet:"risk"`

	Extra map[string]string `parquet:"extra"`
}

type Writer struct {
	dataDir string
}

func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir}
}

var _ ports.DatasetWriter = (*Writer)(nil)

// Write stores ds at {dataDir}/{COUNTRY}/{date}.parquet. The file appears
// atomically: rows are written to a temp file which is then renamed.
func (w *Writer) Write(ctx context.Context, ds domain.Dataset) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(ds.Points) == 0 {
		return "", &domain.OpError{
			Op:   "parquetstore.write",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%s: %w", ds.Country, domain.ErrNoData),
		}
	}

	dir := filepath.Join(w.dataDir, ds.Country)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", w.wrap(dir, err)
	}

	rows := make([]Row, len(ds.Points))
	for i, p := range ds.Points {
		rows[i] = Row{
			Date:          p.Date.Format(domain.DateLayout),
			Country:       p.Country,
			Confirmed:     p.Confirmed,
			Deaths:        p.Deaths,
			Recovered:     p.Recovered,
			Active:        p.Active,
			NewCases:      p.NewCases,
			PrevConfirmed: p.PrevConfirmed,
			GrowthRate:    p.GrowthRate,
			Risk:          string(p.Risk),
			Extra:         p.Extra,
		}
	}

	dst := filepath.Join(dir, ds.DateLabel+".parquet")
	tmp, err := os.CreateTemp(dir, ".tmp-*.parquet")
	if err != nil {
		return "", w.wrap(dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := parquet.Write(tmp, rows); err != nil {
		tmp.Close()
		return "", w.wrap(tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", w.wrap(tmpName, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", w.wrap(dst, err)
	}

	return dst, nil
}

func (w *Writer) wrap(path string, err error) error {
	return &domain.OpError{
		Op:   "parquetstore.write",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
