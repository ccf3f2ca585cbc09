package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDriverProfile(t *testing.T) {
	a := order("D1", "Urban", "Low", date(1, 3), 10)
	b := order("D2", "Urban", "Low", date(1, 3), 10)
	c := order("D3", "Urban", "Low", date(1, 3), 10)
	a.Age, a.VehicleCondition = 22, 0
	b.Age, b.VehicleCondition = 39, 2
	c.Age, c.VehicleCondition = 30, 1

	got, err := DriverProfile([]Record{a, b, c})
	if err != nil {
		t.Fatalf("DriverProfile() error = %v", err)
	}
	want := DriverSummary{MaxAge: 39, MinAge: 22, BestVehicleCondition: 2, WorstVehicleCondition: 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DriverProfile() mismatch (-want +got):\n%s", diff)
	}

	if _, err := DriverProfile(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("DriverProfile(nil) error = %v, want EmptyInputError", err)
	}
}

// speedFixture gives each city n drivers with distinct mean delivery times.
func speedFixture(n int) []Record {
	var records []Record
	for _, city := range append([]string{"Rural"}, RankedCities...) {
		for i := 0; i < n; i++ {
			driver := fmt.Sprintf("%s-D%02d", city, i)
			// Two orders per driver, means are 10+i
			records = append(records,
				order(driver, city, "Low", date(1, 3), 9+i),
				order(driver, city, "Low", date(2, 3), 11+i),
			)
		}
	}
	return records
}

func TestTopDrivers(t *testing.T) {
	records := speedFixture(25)

	fastest := TopDrivers(records, Fastest)
	slowest := TopDrivers(records, Slowest)

	if len(fastest) != 30 || len(slowest) != 30 {
		t.Fatalf("got %d fastest and %d slowest, want 30 each", len(fastest), len(slowest))
	}

	for i, city := range RankedCities {
		fast := fastest[i*TopDriversLimit : (i+1)*TopDriversLimit]
		slow := slowest[i*TopDriversLimit : (i+1)*TopDriversLimit]

		seen := make(map[string]bool)
		for j, d := range fast {
			if d.City != city {
				t.Errorf("fastest[%d] city = %q, want %q", j, d.City, city)
			}
			if d.MeanMinutes != float64(10+j) {
				t.Errorf("fastest %s[%d] mean = %v, want %d", city, j, d.MeanMinutes, 10+j)
			}
			seen[d.DriverID] = true
		}
		for j, d := range slow {
			if d.MeanMinutes != float64(34-j) {
				t.Errorf("slowest %s[%d] mean = %v, want %d", city, j, d.MeanMinutes, 34-j)
			}
			if seen[d.DriverID] {
				t.Errorf("driver %s is both fastest and slowest in %s", d.DriverID, city)
			}
		}
	}

	for _, d := range fastest {
		if d.City == "Rural" {
			t.Fatal("cities outside the ranked set must not appear")
		}
	}
}

func TestTopDriversFewDrivers(t *testing.T) {
	records := speedFixture(4)

	fastest := TopDrivers(records, Fastest)
	slowest := TopDrivers(records, Slowest)
	if len(fastest) != 12 || len(slowest) != 12 {
		t.Fatalf("got %d fastest and %d slowest, want all 12 drivers", len(fastest), len(slowest))
	}

	// With fewer than ten drivers both rankings hold the same drivers.
	for i := range RankedCities {
		f := fastest[i*4 : (i+1)*4]
		s := slowest[i*4 : (i+1)*4]
		for j := range f {
			if f[j] != s[len(s)-1-j] {
				t.Errorf("fastest %v is not the reverse of slowest %v", f, s)
				break
			}
		}
	}
}

func TestTopDriversStableTies(t *testing.T) {
	records := []Record{
		order("B", "Urban", "Low", date(1, 3), 20),
		order("C", "Urban", "Low", date(1, 3), 10),
		order("A", "Urban", "Low", date(1, 3), 20),
	}

	got := TopDrivers(records, Slowest)
	want := []DriverSpeed{
		{City: "Urban", DriverID: "A", MeanMinutes: 20},
		{City: "Urban", DriverID: "B", MeanMinutes: 20},
		{City: "Urban", DriverID: "C", MeanMinutes: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopDrivers() mismatch (-want +got):\n%s", diff)
	}
}

func TestRatings(t *testing.T) {
	rate := func(driver, traffic, weather string, rating float64) Record {
		r := order(driver, "Urban", traffic, date(1, 3), 10)
		r.Weather = weather
		r.Rating = rating
		return r
	}
	records := []Record{
		rate("D1", "Low", "conditions Sunny", 4.0),
		rate("D1", "Jam", "conditions Fog", 5.0),
		rate("D2", "Low", "conditions Sunny", 4.6),
		rate("D2", "Low", "conditions NaN", 3.0),
	}

	t.Run("by driver", func(t *testing.T) {
		got := RatingsByDriver(records)
		if len(got) != 2 || got[0].DriverID != "D1" || !approx(got[0].MeanRating, 4.5) || !approx(got[1].MeanRating, 3.8) {
			t.Errorf("RatingsByDriver() = %+v", got)
		}
	})

	t.Run("by traffic", func(t *testing.T) {
		got := RatingsByTraffic(records)
		if len(got) != 2 {
			t.Fatalf("RatingsByTraffic() returned %d groups, want 2", len(got))
		}
		jam, low := got[0], got[1]
		if jam.Category != "Jam" || jam.Count != 1 || jam.Mean != 5 || jam.Std != 0 {
			t.Errorf("Jam = %+v", jam)
		}
		if low.Category != "Low" || low.Count != 3 || !approx(low.Mean, 3.8666666666666667) {
			t.Errorf("Low = %+v", low)
		}
	})

	t.Run("by weather strips annotation and skips missing", func(t *testing.T) {
		got := RatingsByWeather(records)
		var cats []string
		for _, g := range got {
			cats = append(cats, g.Category)
		}
		if diff := cmp.Diff([]string{"Fog", "Sunny"}, cats); diff != "" {
			t.Errorf("weather categories mismatch (-want +got):\n%s", diff)
		}
		if !approx(got[1].Mean, 4.3) || !approx(got[1].Std, 0.42426406871192845) {
			t.Errorf("Sunny = %+v", got[1])
		}
	})
}
