// Package source reads the raw delivery dataset into a gota frame of string
// columns, ready for core.CleanFrame.
//
// Three sources are supported: a CSV file, an XLSX workbook and a PostgreSQL
// table. Open picks one from configuration.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
)

// Errors returned when a source cannot be opened or read.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyFile         = errors.New("empty file: no data rows")
	ErrSheetNotFound     = errors.New("worksheet not found")
)

// Source loads the raw dataset.
type Source interface {
	// Name identifies the source in logs and snapshot metadata.
	Name() string

	// Load reads every raw row. All columns are strings.
	Load(ctx context.Context) (dataframe.DataFrame, error)
}

// Open selects a source from configuration. A database URL takes precedence
// over the dataset path; otherwise the file extension decides.
// The returned close function releases the source's resources.
func Open(ctx context.Context, cfg *config.Config) (Source, func(), error) {
	if cfg.UsesDatabase() {
		src, err := NewPostgresSource(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	}

	src, err := FileSource(cfg.Dataset.Path, cfg.Dataset.Sheet)
	if err != nil {
		return nil, nil, err
	}
	return src, func() {}, nil
}

// FileSource returns the source for a dataset file based on its extension.
func FileSource(path, sheet string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSource{Path: path}, nil
	case ".xlsx":
		return &XLSXSource{Path: path, Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// loadOptions keeps every column as text so that sentinel markers and
// annotated values reach the cleaner untouched.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	}
}

// frameFromRecords builds a string frame from a header row followed by data rows.
// A header without data rows is reported as ErrEmptyFile.
func frameFromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) <= 1 {
		return dataframe.DataFrame{}, ErrEmptyFile
	}
	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}
