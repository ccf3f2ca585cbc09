package core

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// order builds a canonical record with the fields the aggregations read.
func order(driver, city, traffic string, date time.Time, minutes int) Record {
	day, week := DayAndWeek(date)
	return Record{
		ID:                        driver + date.Format("0102"),
		DeliveryPersonID:          driver,
		Age:                       30,
		Rating:                    4.5,
		RestaurantLatitude:        12.9716,
		RestaurantLongitude:       77.5946,
		DeliveryLocationLatitude:  13.0016,
		DeliveryLocationLongitude: 77.6246,
		OrderDate:                 date,
		Weather:                   "conditions Sunny",
		Traffic:                   traffic,
		VehicleCondition:          1,
		OrderType:                 "Meal",
		VehicleType:               "motorcycle",
		Festival:                  FestivalNo,
		City:                      city,
		DeliveryMinutes:           minutes,
		Day:                       day,
		Week:                      week,
	}
}

func date(day, month int) time.Time {
	return time.Date(2022, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestOrdersPerDay(t *testing.T) {
	records := []Record{
		order("D1", "Urban", "Low", date(19, 3), 10),
		order("D2", "Urban", "Low", date(2, 3), 10),
		order("D3", "Urban", "Low", date(19, 2), 10),
		order("D1", "Urban", "Low", date(11, 3), 10),
	}

	want := []DayCount{{Day: 2, Orders: 1}, {Day: 11, Orders: 1}, {Day: 19, Orders: 2}}
	if diff := cmp.Diff(want, OrdersPerDay(records)); diff != "" {
		t.Errorf("OrdersPerDay() mismatch (-want +got):\n%s", diff)
	}
}

func TestTrafficShare(t *testing.T) {
	records := []Record{
		order("D1", "Urban", "Low", date(1, 3), 10),
		order("D2", "Urban", "Jam", date(1, 3), 10),
		order("D3", "Urban", "Low", date(1, 3), 10),
		order("D4", "Urban", "High", date(1, 3), 10),
		order("D5", "Urban", "Medium", date(1, 3), 10),
		order("D6", "Urban", "Low", date(1, 3), 10),
		order("D7", "Urban", "Jam", date(1, 3), 10),
	}

	shares := TrafficShare(records)

	var keys []string
	var sum float64
	for _, s := range shares {
		keys = append(keys, s.Traffic)
		sum += s.Share
	}
	if diff := cmp.Diff([]string{"High", "Jam", "Low", "Medium"}, keys); diff != "" {
		t.Errorf("traffic order mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("shares sum to %v, want 1", sum)
	}
	if shares[2].Orders != 3 || !approx(shares[2].Share, 3.0/7.0) {
		t.Errorf("Low share = %+v", shares[2])
	}
}

func TestCityTrafficVolume(t *testing.T) {
	records := []Record{
		order("D1", "Urban", "Low", date(1, 3), 10),
		order("D2", "Metropolitian", "Jam", date(1, 3), 10),
		order("D3", "Urban", "Low", date(1, 3), 10),
		order("D4", "Metropolitian", "High", date(1, 3), 10),
	}

	want := []CityTrafficCount{
		{City: "Metropolitian", Traffic: "High", Orders: 1},
		{City: "Metropolitian", Traffic: "Jam", Orders: 1},
		{City: "Urban", Traffic: "Low", Orders: 2},
	}
	if diff := cmp.Diff(want, CityTrafficVolume(records)); diff != "" {
		t.Errorf("CityTrafficVolume() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdersPerWeekAndDriverLoad(t *testing.T) {
	records := []Record{
		order("D1", "Urban", "Low", date(14, 3), 10), // week 11
		order("D1", "Urban", "Low", date(15, 3), 10), // week 11
		order("D2", "Urban", "Low", date(16, 3), 10), // week 11
		order("D1", "Urban", "Low", date(7, 3), 10),  // week 10
	}

	wantWeeks := []WeekCount{{Week: 10, Orders: 1}, {Week: 11, Orders: 3}}
	if diff := cmp.Diff(wantWeeks, OrdersPerWeek(records)); diff != "" {
		t.Errorf("OrdersPerWeek() mismatch (-want +got):\n%s", diff)
	}

	wantLoad := []WeeklyDriverLoad{
		{Week: 10, Orders: 1, Drivers: 1, OrdersPerDriver: 1},
		{Week: 11, Orders: 3, Drivers: 2, OrdersPerDriver: 1.5},
	}
	if diff := cmp.Diff(wantLoad, OrdersPerDriverWeekly(records)); diff != "" {
		t.Errorf("OrdersPerDriverWeekly() mismatch (-want +got):\n%s", diff)
	}
}

func TestCentralRegions(t *testing.T) {
	a := order("D1", "Urban", "Low", date(1, 3), 10)
	b := order("D2", "Urban", "Low", date(1, 3), 10)
	c := order("D3", "Urban", "Low", date(1, 3), 10)
	a.DeliveryLocationLatitude, a.DeliveryLocationLongitude = 10, 70
	b.DeliveryLocationLatitude, b.DeliveryLocationLongitude = 30, 90
	c.DeliveryLocationLatitude, c.DeliveryLocationLongitude = 12, 72
	d := order("D4", "Urban", "Jam", date(1, 3), 10)
	d.DeliveryLocationLatitude, d.DeliveryLocationLongitude = 20, 80

	want := []RegionPoint{
		{City: "Urban", Traffic: "Jam", Latitude: 20, Longitude: 80},
		{City: "Urban", Traffic: "Low", Latitude: 12, Longitude: 72},
	}
	if diff := cmp.Diff(want, CentralRegions([]Record{a, b, c, d})); diff != "" {
		t.Errorf("CentralRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupedAggregationsOnEmptyInput(t *testing.T) {
	if got := OrdersPerDay(nil); got == nil || len(got) != 0 {
		t.Errorf("OrdersPerDay(nil) = %v, want empty slice", got)
	}
	if got := TrafficShare(nil); got == nil || len(got) != 0 {
		t.Errorf("TrafficShare(nil) = %v, want empty slice", got)
	}
	if got := OrdersPerDriverWeekly(nil); got == nil || len(got) != 0 {
		t.Errorf("OrdersPerDriverWeekly(nil) = %v, want empty slice", got)
	}
	if got := CentralRegions(nil); got == nil || len(got) != 0 {
		t.Errorf("CentralRegions(nil) = %v, want empty slice", got)
	}
	if got := TopDrivers(nil, Fastest); got == nil || len(got) != 0 {
		t.Errorf("TopDrivers(nil) = %v, want empty slice", got)
	}
	if got := DeliveryTimeByCityTraffic(nil); got == nil || len(got) != 0 {
		t.Errorf("DeliveryTimeByCityTraffic(nil) = %v, want empty slice", got)
	}
}
