package core

// convert.go provides the cell parsers used by the cleaner.
//
// Unlike a lenient importer, these parsers never coerce bad input to a zero
// value: anything that survives sentinel filtering and still fails to parse is
// reported as a ConversionError or DateParseError.

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// OrderDateLayout is the day-month-four-digit-year pattern of the order date.
// Single-digit days and months are accepted.
const OrderDateLayout = "2-1-2006"

// minutesAnnotation is the unit marker embedded in the delivery time column.
const minutesAnnotation = "(min)"

// weatherAnnotation prefixes every weather category in the source data.
const weatherAnnotation = "conditions"

// IsMissing reports whether a raw cell holds the sentinel or no value at all.
// The comparison ignores surrounding whitespace, so "NaN " and "NaN" are
// equivalent, and an empty or absent cell counts as missing.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == strings.TrimSpace(Sentinel)
}

// ParseInt converts a raw cell to an int.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseFloat converts a raw cell to a finite float64.
// NaN and infinities are rejected rather than carried into the data set.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

// ParseOrderDate parses a dd-mm-yyyy order date into a UTC calendar date.
func ParseOrderDate(s string) (time.Time, error) {
	return time.Parse(OrderDateLayout, strings.TrimSpace(s))
}

// ParseMinutes strips the "(min)" marker and surrounding whitespace from a
// delivery time cell and converts the remainder to whole minutes.
//
//	"(min) 24" -> 24
//	"24"       -> 24
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, minutesAnnotation)
	s = strings.TrimSuffix(s, minutesAnnotation)
	return strconv.Atoi(strings.TrimSpace(s))
}

// WeatherCategory strips the "conditions" annotation from a weather cell.
//
//	"conditions Sunny" -> "Sunny"
//	"conditions NaN"   -> "NaN"
func WeatherCategory(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, weatherAnnotation)
	return strings.TrimSpace(s)
}

// DayAndWeek derives the day of month and the ISO-8601 week of year of a date.
func DayAndWeek(t time.Time) (day, week int) {
	_, week = t.ISOWeek()
	return t.Day(), week
}

// MakeHeaderIndex creates a HeaderIndex from a raw header row.
// Header cells are trimmed; matching is case-sensitive.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// Raw formats a canonical record back into the raw text schema.
// Cleaning the result again yields the same record.
func (r Record) Raw() RawRecord {
	ff := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return RawRecord{
		ID:                        r.ID,
		DeliveryPersonID:          r.DeliveryPersonID,
		Age:                       strconv.Itoa(r.Age),
		Rating:                    ff(r.Rating),
		RestaurantLatitude:        ff(r.RestaurantLatitude),
		RestaurantLongitude:       ff(r.RestaurantLongitude),
		DeliveryLocationLatitude:  ff(r.DeliveryLocationLatitude),
		DeliveryLocationLongitude: ff(r.DeliveryLocationLongitude),
		OrderDate:                 r.OrderDate.Format("02-01-2006"),
		TimeOrdered:               r.TimeOrdered,
		TimePicked:                r.TimePicked,
		Weather:                   r.Weather,
		Traffic:                   r.Traffic,
		VehicleCondition:          strconv.Itoa(r.VehicleCondition),
		OrderType:                 r.OrderType,
		VehicleType:               r.VehicleType,
		MultipleDeliveries:        strconv.Itoa(r.MultipleDeliveries),
		Festival:                  r.Festival,
		City:                      r.City,
		TimeTaken:                 strconv.Itoa(r.DeliveryMinutes),
	}
}
