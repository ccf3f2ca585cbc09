package core

// clean.go turns raw delivery rows into canonical Records.
//
// Cleaning runs as a sequence of passes over the whole batch, in this order:
//
//  1. Drop rows where any sentinel-checked column is missing
//  2. Convert rating, age, multiple deliveries, coordinates and vehicle condition
//  3. Parse the order date (dd-mm-yyyy)
//  4. Trim identifier and categorical text
//  5. Strip the "(min)" marker from the delivery time and convert it
//  6. Derive day of month and ISO week from the order date
//
// Each pass assumes the invariants of the previous ones, so the first error a
// malformed file reports is the one from the earliest failing pass. Row order
// of the surviving input is preserved.

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// lineColumn carries source line numbers through gota filtering.
const lineColumn = "__line"

// Clean validates and normalizes raw rows into canonical records.
// Rows with a missing sentinel-checked field are dropped silently; any other
// malformed value fails the whole batch.
func Clean(rows []RawRecord) ([]Record, error) {
	kept := dropMissing(rows)

	out := make([]Record, len(kept))

	// Pass 2: numeric conversions
	for i, raw := range kept {
		if err := convertNumbers(&out[i], raw); err != nil {
			return nil, err
		}
	}

	// Pass 3: order date
	for i, raw := range kept {
		d, err := ParseOrderDate(raw.OrderDate)
		if err != nil {
			return nil, &DateParseError{
				Line:   raw.Line,
				Field:  ColOrderDate,
				Value:  raw.OrderDate,
				Layout: OrderDateLayout,
				Err:    err,
			}
		}
		out[i].OrderDate = d
	}

	// Pass 4: identifiers and categories
	for i, raw := range kept {
		rec := &out[i]
		rec.ID = strings.TrimSpace(raw.ID)
		rec.DeliveryPersonID = strings.TrimSpace(raw.DeliveryPersonID)
		rec.TimeOrdered = strings.TrimSpace(raw.TimeOrdered)
		rec.TimePicked = strings.TrimSpace(raw.TimePicked)
		rec.Weather = strings.TrimSpace(raw.Weather)
		rec.Traffic = strings.TrimSpace(raw.Traffic)
		rec.OrderType = strings.TrimSpace(raw.OrderType)
		rec.VehicleType = strings.TrimSpace(raw.VehicleType)
		rec.Festival = strings.TrimSpace(raw.Festival)
		rec.City = strings.TrimSpace(raw.City)
	}

	// Pass 5: delivery time
	for i, raw := range kept {
		m, err := ParseMinutes(raw.TimeTaken)
		if err != nil {
			return nil, &ConversionError{Line: raw.Line, Field: ColTimeTaken, Value: raw.TimeTaken, Target: "minutes", Err: err}
		}
		out[i].DeliveryMinutes = m
	}

	// Pass 6: derived calendar fields
	for i := range out {
		out[i].Day, out[i].Week = DayAndWeek(out[i].OrderDate)
	}

	return out, nil
}

// CleanFrame cleans a raw gota frame whose columns are all strings.
// The sentinel filter runs on the frame itself; surviving rows are then
// mapped to RawRecords and cleaned with Clean.
func CleanFrame(df dataframe.DataFrame) (CleanResult, error) {
	if df.Err != nil {
		return CleanResult{}, fmt.Errorf("read raw frame: %w", df.Err)
	}

	names := df.Names()
	if _, err := ValidateHeaders(names); err != nil {
		return CleanResult{}, err
	}

	total := df.Nrow()
	if total == 0 {
		return CleanResult{Records: []Record{}}, nil
	}

	lines := make([]int, total)
	for i := range lines {
		lines[i] = i + 1
	}
	df = df.Mutate(series.New(lines, series.Int, lineColumn))

	filters := make([]dataframe.F, 0, len(Schema))
	for _, col := range SentinelColumns() {
		filters = append(filters, dataframe.F{
			Colname:    col,
			Comparator: series.CompFunc,
			Comparando: present,
		})
	}
	kept := df.FilterAggregation(dataframe.And, filters...)
	if kept.Err != nil {
		return CleanResult{}, fmt.Errorf("filter missing values: %w", kept.Err)
	}

	raws, err := frameToRaw(kept, names)
	if err != nil {
		return CleanResult{}, err
	}

	records, err := Clean(raws)
	if err != nil {
		return CleanResult{}, err
	}

	return CleanResult{
		Records: records,
		Total:   total,
		Dropped: total - len(records),
	}, nil
}

// present is the gota filter predicate that keeps non-missing cells.
func present(el series.Element) bool {
	return !el.IsNA() && !IsMissing(el.String())
}

// frameToRaw converts a filtered frame back into RawRecords.
func frameToRaw(df dataframe.DataFrame, names []string) ([]RawRecord, error) {
	n := df.Nrow()
	raws := make([]RawRecord, n)
	if n == 0 {
		return raws, nil
	}

	lines, err := df.Col(lineColumn).Int()
	if err != nil {
		return nil, fmt.Errorf("read line numbers: %w", err)
	}
	for i := range raws {
		raws[i].Line = lines[i]
	}

	have := make(map[string]bool, len(names))
	for _, name := range names {
		have[strings.TrimSpace(name)] = true
	}

	for _, spec := range Schema {
		if !have[spec.Name] {
			continue
		}
		values := df.Col(spec.Name).Records()
		for i := range raws {
			raws[i].setField(spec.Name, values[i])
		}
	}

	return raws, nil
}

// dropMissing keeps rows where every sentinel-checked column has a value.
func dropMissing(rows []RawRecord) []RawRecord {
	cols := SentinelColumns()
	kept := make([]RawRecord, 0, len(rows))

	for i, raw := range rows {
		if raw.Line == 0 {
			raw.Line = i + 1
		}
		missing := false
		for _, col := range cols {
			if IsMissing(raw.Field(col)) {
				missing = true
				break
			}
		}
		if !missing {
			kept = append(kept, raw)
		}
	}

	return kept
}

// convertNumbers fills the numeric fields of rec from raw.
func convertNumbers(rec *Record, raw RawRecord) error {
	floats := []struct {
		field string
		value string
		dst   *float64
	}{
		{ColRating, raw.Rating, &rec.Rating},
		{ColRestaurantLat, raw.RestaurantLatitude, &rec.RestaurantLatitude},
		{ColRestaurantLon, raw.RestaurantLongitude, &rec.RestaurantLongitude},
		{ColDeliveryLat, raw.DeliveryLocationLatitude, &rec.DeliveryLocationLatitude},
		{ColDeliveryLon, raw.DeliveryLocationLongitude, &rec.DeliveryLocationLongitude},
	}
	for _, f := range floats {
		v, err := ParseFloat(f.value)
		if err != nil {
			return &ConversionError{Line: raw.Line, Field: f.field, Value: f.value, Target: "float", Err: err}
		}
		*f.dst = v
	}

	ints := []struct {
		field string
		value string
		dst   *int
	}{
		{ColAge, raw.Age, &rec.Age},
		{ColMultiple, raw.MultipleDeliveries, &rec.MultipleDeliveries},
		{ColVehicleCondition, raw.VehicleCondition, &rec.VehicleCondition},
	}
	for _, f := range ints {
		v, err := ParseInt(f.value)
		if err != nil {
			return &ConversionError{Line: raw.Line, Field: f.field, Value: f.value, Target: "int", Err: err}
		}
		*f.dst = v
	}

	return nil
}
