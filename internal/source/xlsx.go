package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads the dataset from one worksheet of a workbook.
// The first row of the sheet is the header.
type XLSXSource struct {
	Path  string
	Sheet string // Worksheet name; empty selects the first sheet
}

// Name returns the file path and sheet.
func (s *XLSXSource) Name() string {
	if s.Sheet == "" {
		return s.Path
	}
	return s.Path + "#" + s.Sheet
}

// Load reads the worksheet into a string frame.
func (s *XLSXSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, ErrSheetNotFound)
		}
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, ErrEmptyFile)
	}

	records := padRows(rows)

	df, err := frameFromRecords(records)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load sheet %q: %w", sheet, err)
	}

	slog.Debug("xlsx dataset read",
		"path", s.Path,
		"sheet", sheet,
		"rows", df.Nrow(),
	)

	return df, nil
}

// padRows makes every row as wide as the header. GetRows omits trailing
// empty cells, and blank cells count as missing during cleaning.
func padRows(rows [][]string) [][]string {
	width := len(rows[0])
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		case len(row) > width:
			row = row[:width]
		}
		out = append(out, row)
	}
	return out
}
