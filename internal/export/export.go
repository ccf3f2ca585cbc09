// Package export writes aggregation tables and cleaned records as CSV or XLSX
// downloads.
//
// Rows are any slice of structs carrying `csv` tags. The CSV encoding is the
// canonical one; the XLSX writer lays the same header and cells out on a
// worksheet, storing numeric cells as numbers.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

// Format is a download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DateLayout is the layout of date cells in exported files.
const DateLayout = "2006-01-02"

// maxSheetName is Excel's worksheet name limit.
const maxSheetName = 31

// ParseFormat validates a format name such as "csv" or ".XLSX".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName builds the download name for a table.
func FileName(name string, f Format) string {
	return name + "." + string(f)
}

// Write encodes rows in the given format. Sheet names the XLSX worksheet and
// is ignored for CSV.
func Write(w io.Writer, f Format, sheet string, rows any) error {
	switch f {
	case FormatCSV:
		return CSV(w, rows)
	case FormatXLSX:
		return XLSX(w, sheet, rows)
	default:
		return fmt.Errorf("unsupported export format: %q", f)
	}
}

// CSV writes rows with a header line taken from the `csv` struct tags.
func CSV(w io.Writer, rows any) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	enc.Register(func(t time.Time) ([]byte, error) {
		return []byte(t.Format(DateLayout)), nil
	})

	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Records returns the header and cells of rows as strings, formatted exactly
// as CSV writes them.
func Records(rows any) ([][]string, error) {
	var buf bytes.Buffer
	if err := CSV(&buf, rows); err != nil {
		return nil, err
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read encoded rows: %w", err)
	}
	return records, nil
}

// XLSX writes rows to a single worksheet with a bold header row.
func XLSX(w io.Writer, sheet string, rows any) error {
	records, err := Records(rows)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet = sheetName(sheet)
	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(record))
		for j, v := range record {
			if i > 0 {
				values[j] = cellValue(v)
			} else {
				values[j] = v
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
			return fmt.Errorf("header style: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// cellValue stores numbers as numeric cells and everything else as text.
func cellValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// sheetName trims a worksheet name to Excel's limit.
func sheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
