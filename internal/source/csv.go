package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// CSVSource reads a comma-separated dataset file.
type CSVSource struct {
	Path string
}

// Name returns the file path.
func (s *CSVSource) Name() string { return s.Path }

// Load parses the whole file into a string frame.
func (s *CSVSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.Size() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", s.Path, ErrEmptyFile)
	}

	reader := WrapForStreaming(f)
	df := dataframe.ReadCSV(reader, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv %s: %w", s.Path, df.Err)
	}

	slog.Debug("csv dataset read",
		"path", s.Path,
		"bytes", reader.BytesRead(),
		"rows", df.Nrow(),
		"columns", df.Ncol(),
	)

	return df, nil
}
