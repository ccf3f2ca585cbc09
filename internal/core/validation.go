package core

// validation.go checks a raw header against the delivery schema before any
// row is cleaned, so a file with the wrong layout fails once with the full
// list of problems instead of once per row.

import (
	"fmt"
	"strings"
)

// ValidateHeaders validates that all required columns exist in the raw header.
// Returns a mapping from column name to index, or an error listing missing columns.
func ValidateHeaders(headers []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range Schema {
		if !spec.Required {
			continue
		}
		if _, ok := idx[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// RowToRaw maps a raw row to a RawRecord using a header index.
// Columns absent from the header or the row are left empty.
func RowToRaw(row []string, idx HeaderIndex, line int) RawRecord {
	rec := RawRecord{Line: line}
	for _, spec := range Schema {
		pos, ok := idx[spec.Name]
		if !ok || pos >= len(row) {
			continue
		}
		rec.setField(spec.Name, row[pos])
	}
	return rec
}
