package core

import "sort"

// Ranking selects the direction of a driver speed ranking.
type Ranking int

const (
	// Fastest ranks by ascending mean delivery time.
	Fastest Ranking = iota
	// Slowest ranks by descending mean delivery time.
	Slowest
)

func (r Ranking) String() string {
	if r == Slowest {
		return "slowest"
	}
	return "fastest"
}

// RankedCities are the city categories a driver ranking covers, in output order.
var RankedCities = []string{"Metropolitian", "Urban", "Semi-Urban"}

// TopDriversLimit is the number of drivers kept per city in a ranking.
const TopDriversLimit = 10

// DriverSpeed is a driver's mean delivery time within one city.
type DriverSpeed struct {
	City        string  `json:"city" csv:"city"`
	DriverID    string  `json:"driver_id" csv:"driver_id"`
	MeanMinutes float64 `json:"mean_minutes" csv:"mean_minutes"`
}

// DriverRating is a driver's mean customer rating.
type DriverRating struct {
	DriverID   string  `json:"driver_id" csv:"driver_id"`
	MeanRating float64 `json:"mean_rating" csv:"mean_rating"`
}

// RatingStats summarizes the ratings of one category.
type RatingStats struct {
	Category string  `json:"category" csv:"category"`
	Count    int     `json:"count" csv:"count"`
	Mean     float64 `json:"mean" csv:"mean"`
	Std      float64 `json:"std" csv:"std"`
}

// DriverSummary holds the age and vehicle condition extremes of the fleet.
type DriverSummary struct {
	MaxAge                int `json:"max_age"`
	MinAge                int `json:"min_age"`
	BestVehicleCondition  int `json:"best_vehicle_condition"`
	WorstVehicleCondition int `json:"worst_vehicle_condition"`
}

// DriverProfile returns the fleet's age and vehicle condition extremes.
func DriverProfile(records []Record) (DriverSummary, error) {
	if len(records) == 0 {
		return DriverSummary{}, emptyInput("driver profile")
	}

	first := records[0]
	s := DriverSummary{
		MaxAge:                first.Age,
		MinAge:                first.Age,
		BestVehicleCondition:  first.VehicleCondition,
		WorstVehicleCondition: first.VehicleCondition,
	}
	for _, r := range records[1:] {
		s.MaxAge = max(s.MaxAge, r.Age)
		s.MinAge = min(s.MinAge, r.Age)
		s.BestVehicleCondition = max(s.BestVehicleCondition, r.VehicleCondition)
		s.WorstVehicleCondition = min(s.WorstVehicleCondition, r.VehicleCondition)
	}
	return s, nil
}

// TopDrivers ranks drivers by mean delivery time within each of
// RankedCities and keeps at most TopDriversLimit per city. Equal means keep
// the order of their (city, driver) group keys.
func TopDrivers(records []Record, rank Ranking) []DriverSpeed {
	groups := groupBy(records, func(r Record) pair { return pair{r.City, r.DeliveryPersonID} }, pairLess)

	byCity := make(map[string][]DriverSpeed)
	for _, g := range groups {
		byCity[g.Key.first] = append(byCity[g.Key.first], DriverSpeed{
			City:        g.Key.first,
			DriverID:    g.Key.second,
			MeanMinutes: mean(column(g.Records, minutesOf)),
		})
	}

	out := make([]DriverSpeed, 0, len(RankedCities)*TopDriversLimit)
	for _, city := range RankedCities {
		speeds := byCity[city]
		sort.SliceStable(speeds, func(i, j int) bool {
			if rank == Slowest {
				return speeds[i].MeanMinutes > speeds[j].MeanMinutes
			}
			return speeds[i].MeanMinutes < speeds[j].MeanMinutes
		})
		if len(speeds) > TopDriversLimit {
			speeds = speeds[:TopDriversLimit]
		}
		out = append(out, speeds...)
	}
	return out
}

// RatingsByDriver returns each driver's mean rating.
func RatingsByDriver(records []Record) []DriverRating {
	groups := groupBy(records, func(r Record) string { return r.DeliveryPersonID }, stringLess)

	out := make([]DriverRating, 0, len(groups))
	for _, g := range groups {
		out = append(out, DriverRating{
			DriverID:   g.Key,
			MeanRating: mean(column(g.Records, ratingOf)),
		})
	}
	return out
}

// RatingsByTraffic summarizes ratings per traffic density.
func RatingsByTraffic(records []Record) []RatingStats {
	return ratingStats(records, func(r Record) string { return r.Traffic })
}

// RatingsByWeather summarizes ratings per weather category. The
// "conditions" annotation is stripped first, and rows whose weather is
// missing after stripping are left out of this table only.
func RatingsByWeather(records []Record) []RatingStats {
	known := make([]Record, 0, len(records))
	for _, r := range records {
		if !IsMissing(WeatherCategory(r.Weather)) {
			known = append(known, r)
		}
	}
	return ratingStats(known, func(r Record) string { return WeatherCategory(r.Weather) })
}

func ratingStats(records []Record, key func(Record) string) []RatingStats {
	groups := groupBy(records, key, stringLess)

	out := make([]RatingStats, 0, len(groups))
	for _, g := range groups {
		m, s := meanStd(column(g.Records, ratingOf))
		out = append(out, RatingStats{
			Category: g.Key,
			Count:    len(g.Records),
			Mean:     m,
			Std:      s,
		})
	}
	return out
}
