package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoData is returned when no CSV file in the directory could be parsed.
var ErrNoData = errors.New("no data loaded from CSV files")

// ErrEmptyFile marks an export holding a header and no rows.
var ErrEmptyFile = errors.New("file has no data rows")

const maxConcurrentDecodes = 4

// na is the cell text gota's string series reads back as NA.
const na = "NaN"

type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// FileError records a file that was skipped during a load.
type FileError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// LoadedFile describes a file that made it into the merged dataframe.
type LoadedFile struct {
	Path     string   `json:"path"`
	Encoding Encoding `json:"encoding"`
	Rows     int      `json:"rows"`
}

type LoadResult struct {
	Dataframe dataframe.DataFrame
	Files     []LoadedFile
	Skipped   []FileError
}

// ListCSV returns the *.csv files directly under dir, sorted by name.
func ListCSV(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// dataLines counts the non-blank lines after the header.
func dataLines(text []byte) int {
	lines := lo.Filter(strings.Split(string(text), "\n"), func(l string, _ int) bool {
		return strings.TrimSpace(l) != ""
	})
	return max(len(lines)-1, 0)
}

func decoderFor(raw []byte) (io.Reader, Encoding) {
	if utf8.Valid(raw) {
		return transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder())), EncodingUTF8
	}
	// Exports saved by spreadsheet tools on Windows come out as Latin-1.
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw)), EncodingLatin1
}

// OpenFileAndDecode parses a `;` delimited export, trying UTF-8 first and
// Latin-1 second. Every column is kept as a string and empty cells become NA.
func OpenFileAndDecode(path string) (dataframe.DataFrame, Encoding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dataframe.DataFrame{}, "", fmt.Errorf("failed to open file %s: %w", path, err)
	}

	decoded, enc := decoderFor(raw)
	text, err := io.ReadAll(decoded)
	if err != nil {
		return dataframe.DataFrame{}, enc, fmt.Errorf("failed to decode %s as %s: %w", path, enc, err)
	}
	if dataLines(text) == 0 {
		return dataframe.DataFrame{}, enc, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	df := dataframe.ReadCSV(bytes.NewReader(text),
		dataframe.WithDelimiter(';'),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", na, "<nil>"}),
	)
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, enc, fmt.Errorf("failed to parse %s as %s: %w", path, enc, err)
	}

	return df, enc, nil
}

// UnionColumns returns every column name across frames in first-seen order.
func UnionColumns(frames []dataframe.DataFrame) []string {
	var names []string
	for _, df := range frames {
		names = append(names, df.Names()...)
	}
	return lo.Uniq(names)
}

// concatUnion stacks frames under the union of their columns. Cells of a
// column a frame lacks are NA. gota's Concat re-sets appended cells from
// their string form, which turns NA into the text "NaN", so columns are
// rebuilt from strings here instead.
func concatUnion(frames []dataframe.DataFrame) dataframe.DataFrame {
	names := UnionColumns(frames)
	columns := make([]series.Series, 0, len(names))
	for _, name := range names {
		var cells []string
		for _, df := range frames {
			if !lo.Contains(df.Names(), name) {
				cells = append(cells, lo.Times(df.Nrow(), func(int) string { return na })...)
				continue
			}
			col := df.Col(name)
			for i := 0; i < col.Len(); i++ {
				el := col.Elem(i)
				if el.IsNA() {
					cells = append(cells, na)
					continue
				}
				cells = append(cells, el.String())
			}
		}
		columns = append(columns, series.New(cells, series.String, name))
	}
	return dataframe.New(columns...)
}

type decodeResult struct {
	df  dataframe.DataFrame
	enc Encoding
	err error
}

// LoadDir decodes every CSV in dir and concatenates them. Columns are merged as
// an outer union; cells of columns a file lacks are NA. Files that fail are
// reported in Skipped and do not abort the load.
func LoadDir(ctx context.Context, dir string, appLogger *logger.Logger) (LoadResult, error) {
	const component = "CSVLoader"

	paths, err := ListCSV(dir)
	if err != nil {
		appLogger.Error(component, "Failed to list directory: dir=%s error=%v", dir, err)
		return LoadResult{}, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	appLogger.Debug(component, "Discovered CSV files: dir=%s count=%d", dir, len(paths))

	results := make([]decodeResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			df, enc, err := OpenFileAndDecode(p)
			results[i] = decodeResult{df: df, enc: enc, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}

	var out LoadResult
	var frames []dataframe.DataFrame
	for i, r := range results {
		if r.err != nil {
			appLogger.Warn(component, "Skipping file: path=%s error=%v", paths[i], r.err)
			out.Skipped = append(out.Skipped, FileError{Path: paths[i], Err: r.err})
			continue
		}
		frames = append(frames, r.df)
		out.Files = append(out.Files, LoadedFile{Path: paths[i], Encoding: r.enc, Rows: r.df.Nrow()})
		appLogger.Debug(component, "File decoded: path=%s encoding=%s rows=%d", paths[i], r.enc, r.df.Nrow())
	}

	merged := len(frames) > 0
	if merged {
		out.Dataframe = concatUnion(frames)
	}

	if !merged {
		appLogger.Error(component, "No CSV file could be loaded: dir=%s skipped=%d", dir, len(out.Skipped))
		return out, ErrNoData
	}
	if err := out.Dataframe.Error(); err != nil {
		return out, fmt.Errorf("failed to concatenate files: %w", err)
	}

	appLogger.Info(component, "Load completed: dir=%s files=%d skipped=%d rows=%d", dir, len(out.Files), len(out.Skipped), out.Dataframe.Nrow())
	return out, nil
}
