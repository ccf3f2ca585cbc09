package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/go-cmp/cmp"
)

// rawOrder returns a well-formed raw row in the source file's formatting.
func rawOrder(id, city, traffic, minutes string) RawRecord {
	return RawRecord{
		ID:                        id + " ",
		DeliveryPersonID:          "INDORES13DEL02 ",
		Age:                       "37",
		Rating:                    "4.9",
		RestaurantLatitude:        "22.745049",
		RestaurantLongitude:       "75.892471",
		DeliveryLocationLatitude:  "22.765049",
		DeliveryLocationLongitude: "75.912471",
		OrderDate:                 "19-03-2022",
		TimeOrdered:               "11:30:00",
		TimePicked:                "11:45:00",
		Weather:                   "conditions Sunny",
		Traffic:                   traffic,
		VehicleCondition:          "2",
		OrderType:                 "Snack ",
		VehicleType:               "motorcycle ",
		MultipleDeliveries:        "0",
		Festival:                  "No ",
		City:                      city,
		TimeTaken:                 minutes,
	}
}

func TestCleanDeliveryMinutes(t *testing.T) {
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "10"),
		rawOrder("0x2", "Urban ", "Low ", "(min) 20"),
		rawOrder("0x3", "Urban ", "Low ", "(min) 15 "),
	}

	records, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	var got []int
	for _, r := range records {
		got = append(got, r.DeliveryMinutes)
	}
	if diff := cmp.Diff([]int{10, 20, 15}, got); diff != "" {
		t.Errorf("minutes mismatch (-want +got):\n%s", diff)
	}

	stats := DeliveryTimeByCity(records)
	if len(stats) != 1 {
		t.Fatalf("DeliveryTimeByCity() returned %d groups, want 1", len(stats))
	}
	if stats[0].City != "Urban" || stats[0].Mean != 15 || !approx(stats[0].Std, 5) {
		t.Errorf("DeliveryTimeByCity() = %+v, want Urban mean 15 std 5", stats[0])
	}
}

func TestCleanCanonicalRecord(t *testing.T) {
	records, err := Clean([]RawRecord{rawOrder("0x4607", "Urban ", "High ", "(min) 24")})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	want := Record{
		ID:                        "0x4607",
		DeliveryPersonID:          "INDORES13DEL02",
		Age:                       37,
		Rating:                    4.9,
		RestaurantLatitude:        22.745049,
		RestaurantLongitude:       75.892471,
		DeliveryLocationLatitude:  22.765049,
		DeliveryLocationLongitude: 75.912471,
		OrderDate:                 time.Date(2022, 3, 19, 0, 0, 0, 0, time.UTC),
		TimeOrdered:               "11:30:00",
		TimePicked:                "11:45:00",
		Weather:                   "conditions Sunny",
		Traffic:                   "High",
		VehicleCondition:          2,
		OrderType:                 "Snack",
		VehicleType:               "motorcycle",
		MultipleDeliveries:        0,
		Festival:                  "No",
		City:                      "Urban",
		DeliveryMinutes:           24,
		Day:                       19,
		Week:                      11,
	}
	if diff := cmp.Diff([]Record{want}, records); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanDropsSentinelRows(t *testing.T) {
	for _, col := range SentinelColumns() {
		for _, missing := range []string{Sentinel, "NaN", ""} {
			t.Run(col+"/"+missing, func(t *testing.T) {
				bad := rawOrder("0x2", "Urban ", "Low ", "20")
				bad.setField(col, missing)

				records, err := Clean([]RawRecord{rawOrder("0x1", "Urban ", "Low ", "10"), bad})
				if err != nil {
					t.Fatalf("Clean() error = %v", err)
				}
				if len(records) != 1 || records[0].ID != "0x1" {
					t.Errorf("expected only 0x1 to survive, got %d records", len(records))
				}
			})
		}
	}
}

func TestCleanSentinelTrafficAbsentFromAggregations(t *testing.T) {
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "10"),
		rawOrder("0x2", "Urban ", Sentinel, "20"),
		rawOrder("0x3", "Metropolitian ", "Jam ", "30"),
	}

	records, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	for _, r := range records {
		if r.ID == "0x2" {
			t.Fatal("row with sentinel traffic survived cleaning")
		}
		for _, col := range SentinelColumns() {
			if IsMissing(r.Raw().Field(col)) {
				t.Errorf("record %s has missing %s", r.ID, col)
			}
		}
	}

	var total int
	for _, ts := range TrafficShare(records) {
		if IsMissing(ts.Traffic) {
			t.Errorf("sentinel traffic category present: %+v", ts)
		}
		total += ts.Orders
	}
	if total != 2 {
		t.Errorf("traffic share counts %d orders, want 2", total)
	}
}

func TestCleanConversionError(t *testing.T) {
	bad := rawOrder("0x2", "Urban ", "Low ", "20")
	bad.Rating = "four"

	_, err := Clean([]RawRecord{rawOrder("0x1", "Urban ", "Low ", "10"), bad})

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("Clean() error = %v, want ConversionError", err)
	}
	if convErr.Line != 2 || convErr.Field != ColRating || convErr.Value != "four" {
		t.Errorf("ConversionError = %+v", convErr)
	}
	if !errors.Is(err, ErrConversion) {
		t.Error("errors.Is(err, ErrConversion) = false")
	}
}

func TestCleanDoesNotCoerceBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*RawRecord)
		field string
	}{
		{"age", func(r *RawRecord) { r.Age = "3x" }, ColAge},
		{"sentinel rating", func(r *RawRecord) { r.Rating = Sentinel }, ColRating},
		{"infinite rating", func(r *RawRecord) { r.Rating = "Inf" }, ColRating},
		{"multiple deliveries", func(r *RawRecord) { r.MultipleDeliveries = "one" }, ColMultiple},
		{"latitude", func(r *RawRecord) { r.RestaurantLatitude = "north" }, ColRestaurantLat},
		{"vehicle condition", func(r *RawRecord) { r.VehicleCondition = "" }, ColVehicleCondition},
		{"minutes", func(r *RawRecord) { r.TimeTaken = "(min) soon" }, ColTimeTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rawOrder("0x1", "Urban ", "Low ", "10")
			tt.apply(&row)

			_, err := Clean([]RawRecord{row})
			var convErr *ConversionError
			if !errors.As(err, &convErr) {
				t.Fatalf("Clean() error = %v, want ConversionError", err)
			}
			if convErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", convErr.Field, tt.field)
			}
		})
	}
}

func TestCleanDateParseError(t *testing.T) {
	bad := rawOrder("0x1", "Urban ", "Low ", "10")
	bad.OrderDate = "2022-03-19"

	_, err := Clean([]RawRecord{bad})

	var dateErr *DateParseError
	if !errors.As(err, &dateErr) {
		t.Fatalf("Clean() error = %v, want DateParseError", err)
	}
	if dateErr.Value != "2022-03-19" || dateErr.Layout != OrderDateLayout {
		t.Errorf("DateParseError = %+v", dateErr)
	}
	if !errors.Is(err, ErrDateParse) {
		t.Error("errors.Is(err, ErrDateParse) = false")
	}
}

func TestCleanReportsEarliestFailingStep(t *testing.T) {
	badDate := rawOrder("0x1", "Urban ", "Low ", "10")
	badDate.OrderDate = "yesterday"
	badNumber := rawOrder("0x2", "Urban ", "Low ", "10")
	badNumber.Age = "old"

	// The date failure comes first in the file, but numbers are converted
	// before dates are parsed.
	_, err := Clean([]RawRecord{badDate, badNumber})
	if !errors.Is(err, ErrConversion) {
		t.Errorf("Clean() error = %v, want conversion error", err)
	}
}

func TestCleanDerivedCalendarFields(t *testing.T) {
	dates := []string{"11-02-2022", "13-02-2022", "01-03-2022", "19-03-2022", "31-03-2022", "06-04-2022"}
	rows := make([]RawRecord, len(dates))
	for i, d := range dates {
		rows[i] = rawOrder("0x1", "Urban ", "Low ", "10")
		rows[i].OrderDate = d
	}

	records, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	for _, r := range records {
		if r.Day < 1 || r.Day > 31 || r.Week < 1 || r.Week > 53 {
			t.Errorf("%s: day %d week %d out of range", r.OrderDate.Format("2006-01-02"), r.Day, r.Week)
		}
		day, week := DayAndWeek(r.OrderDate)
		if day != r.Day || week != r.Week {
			t.Errorf("%s: stored (%d, %d), derived (%d, %d)", r.OrderDate.Format("2006-01-02"), r.Day, r.Week, day, week)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "(min) 10"),
		rawOrder("0x2", "Metropolitian ", "Jam ", "(min) 42"),
		rawOrder("0x3", "Semi-Urban ", "High ", "33"),
	}

	first, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	again := make([]RawRecord, len(first))
	for i, r := range first {
		again[i] = r.Raw()
	}
	second, err := Clean(again)
	if err != nil {
		t.Fatalf("second Clean() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cleaning twice changed records (-first +second):\n%s", diff)
	}
}

func TestCleanPreservesOrder(t *testing.T) {
	rows := []RawRecord{
		rawOrder("0x9", "Urban ", "Low ", "10"),
		rawOrder("0x1", "Urban ", Sentinel, "10"),
		rawOrder("0x5", "Urban ", "Low ", "10"),
		rawOrder("0x3", "Urban ", "Low ", "10"),
	}

	records, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"0x9", "0x5", "0x3"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	records, err := Clean(nil)
	if err != nil {
		t.Fatalf("Clean(nil) error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Clean(nil) = %v, want empty slice", records)
	}
}

// frameOf builds a raw string frame the way the sources do.
func frameOf(rows []RawRecord) dataframe.DataFrame {
	header := make([]string, len(Schema))
	for i, spec := range Schema {
		header[i] = spec.Name
	}

	records := [][]string{header}
	for _, r := range rows {
		line := make([]string, len(Schema))
		for i, spec := range Schema {
			line[i] = r.Field(spec.Name)
		}
		records = append(records, line)
	}

	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

func TestCleanFrame(t *testing.T) {
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "10"),
		rawOrder("0x2", Sentinel, "Low ", "20"),
		rawOrder("0x3", "Metropolitian ", "Jam ", "(min) 30"),
	}

	result, err := CleanFrame(frameOf(rows))
	if err != nil {
		t.Fatalf("CleanFrame() error = %v", err)
	}

	if result.Total != 3 || result.Dropped != 1 {
		t.Errorf("Total/Dropped = %d/%d, want 3/1", result.Total, result.Dropped)
	}

	want, err := Clean(rows)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Errorf("CleanFrame() and Clean() disagree (-Clean +CleanFrame):\n%s", diff)
	}
}

func TestCleanFrameErrorLine(t *testing.T) {
	bad := rawOrder("0x3", "Urban ", "Low ", "10")
	bad.Age = "forty"
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "10"),
		rawOrder("0x2", "Urban ", Sentinel, "10"),
		bad,
	}

	_, err := CleanFrame(frameOf(rows))

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("CleanFrame() error = %v, want ConversionError", err)
	}
	if convErr.Line != 3 {
		t.Errorf("Line = %d, want 3", convErr.Line)
	}
}

// A sentinel in a column outside the drop set is malformed input, so the
// whole load fails instead of the row being dropped or coerced to NaN.
func TestCleanFrameSentinelRatingFailsLoad(t *testing.T) {
	bad := rawOrder("0x3", "Urban ", "Low ", "10")
	bad.Rating = Sentinel
	rows := []RawRecord{
		rawOrder("0x1", "Urban ", "Low ", "10"),
		rawOrder("0x2", Sentinel, "Low ", "10"),
		bad,
	}

	result, err := CleanFrame(frameOf(rows))
	if err == nil {
		t.Fatalf("CleanFrame() = %d records, want ConversionError", len(result.Records))
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("CleanFrame() error = %v, want ConversionError", err)
	}
	if convErr.Line != 3 || convErr.Field != ColRating || convErr.Value != Sentinel || convErr.Target != "float" {
		t.Errorf("ConversionError = %+v", convErr)
	}
	want := `conversion error: line 3: cannot convert Delivery_person_Ratings value "NaN " to float`
	if !strings.HasPrefix(err.Error(), want) {
		t.Errorf("error = %q, want prefix %q", err.Error(), want)
	}
	if code := MapError(err).Code; code != "VAL002" {
		t.Errorf("MapError code = %s, want VAL002", code)
	}
}

func TestCleanFrameMissingColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{ColID, ColCity},
		{"0x1", "Urban"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	_, err := CleanFrame(df)
	if err == nil {
		t.Fatal("expected missing column error")
	}
	if got := MapError(err).Code; got != "VAL004" {
		t.Errorf("MapError code = %q, want VAL004", got)
	}
}
