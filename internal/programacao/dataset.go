// Package programacao ties the ingestion, enrichment, filter and metric stages
// together into a loaded Dataset and the Dashboard built from it.
package programacao

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/converter"
	"github.com/farxc/sil_dashboard/internal/programacao/enrich"
	"github.com/farxc/sil_dashboard/internal/programacao/files"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
)

// ErrNoDataset is reported by surfaces that have no Dataset to serve yet.
var ErrNoDataset = errors.New("no dataset loaded")

// Dataset is the merged, enriched content of a data directory. It is never
// mutated after Load returns; a reload builds a new one.
type Dataset struct {
	LoadID   string
	LoadedAt time.Time
	Dir      string
	Files    []files.LoadedFile
	Skipped  []files.FileError
	Columns  []string
	Records  []types.Schedule
}

// HasColumn reports whether any loaded file carried col.
func (d *Dataset) HasColumn(col string) bool {
	return slices.Contains(d.Columns, col)
}

type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary describes a load without its records.
type Summary struct {
	LoadID   string             `json:"load_id"`
	LoadedAt time.Time          `json:"loaded_at"`
	Dir      string             `json:"dir"`
	Files    []files.LoadedFile `json:"files"`
	Skipped  []SkippedFile      `json:"skipped"`
	Columns  []string           `json:"columns"`
	Rows     int                `json:"rows"`
}

func (d *Dataset) Summary() Summary {
	return Summary{
		LoadID:   d.LoadID,
		LoadedAt: d.LoadedAt,
		Dir:      d.Dir,
		Files:    d.Files,
		Skipped:  SkippedFiles(d.Skipped),
		Columns:  d.Columns,
		Rows:     len(d.Records),
	}
}

func SkippedFiles(errs []files.FileError) []SkippedFile {
	return lo.Map(errs, func(e files.FileError, _ int) SkippedFile {
		return SkippedFile{Path: e.Path, Reason: e.Err.Error()}
	})
}

// Load reads every CSV under dir and builds a Dataset. It fails with
// files.ErrNoData when no file could be loaded; the returned LoadResult still
// lists the skipped files in that case.
func Load(ctx context.Context, dir string, c *catalog.Catalog, appLogger *logger.Logger) (*Dataset, files.LoadResult, error) {
	const component = "DatasetLoader"

	res, err := files.LoadDir(ctx, dir, appLogger)
	if err != nil {
		return nil, res, fmt.Errorf("failed to load %s: %w", dir, err)
	}

	enriched := enrich.Enrich(res.Dataframe, c)
	if err := enriched.Error(); err != nil {
		return nil, res, fmt.Errorf("failed to enrich dataframe: %w", err)
	}

	ds := &Dataset{
		LoadID:   ulid.Make().String(),
		LoadedAt: time.Now().UTC(),
		Dir:      dir,
		Files:    res.Files,
		Skipped:  res.Skipped,
		Columns:  res.Dataframe.Names(),
		Records:  converter.DfToSchedules(enriched),
	}

	if missing := lo.Without(types.RequiredColumns, ds.Columns...); len(missing) > 0 {
		appLogger.Warn(component, "Dataset is missing columns: load_id=%s columns=%v", ds.LoadID, missing)
	}
	appLogger.Info(component, "Dataset ready: load_id=%s files=%d skipped=%d records=%d", ds.LoadID, len(ds.Files), len(ds.Skipped), len(ds.Records))
	return ds, res, nil
}
