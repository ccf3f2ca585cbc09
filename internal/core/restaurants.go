package core

// OutlierDistanceKm is the delivery distance at or above which a row is
// treated as a coordinate error and excluded from distance averages.
const OutlierDistanceKm = 100.0

// Festival flag values.
const (
	FestivalYes = "Yes"
	FestivalNo  = "No"
)

// CityDistance is the mean delivery distance of one city.
type CityDistance struct {
	City       string  `json:"city" csv:"city"`
	Kilometers float64 `json:"kilometers" csv:"kilometers"`
}

// TimeStats is the mean and standard deviation of delivery minutes.
type TimeStats struct {
	Mean float64 `json:"mean" csv:"mean"`
	Std  float64 `json:"std" csv:"std"`
}

// DeliveryTimeStats summarizes delivery minutes for one group. Traffic and
// OrderType are empty unless the grouping includes them.
type DeliveryTimeStats struct {
	City      string  `json:"city" csv:"city"`
	Traffic   string  `json:"traffic,omitempty" csv:"traffic,omitempty"`
	OrderType string  `json:"order_type,omitempty" csv:"order_type,omitempty"`
	Count     int     `json:"count" csv:"count"`
	Mean      float64 `json:"mean" csv:"mean"`
	Std       float64 `json:"std" csv:"std"`
}

// UniqueDrivers counts distinct delivery person IDs.
func UniqueDrivers(records []Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.DeliveryPersonID] = struct{}{}
	}
	return len(seen)
}

// withinRange returns the records whose delivery distance is below
// OutlierDistanceKm.
func withinRange(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if DeliveryDistance(r) < OutlierDistanceKm {
			out = append(out, r)
		}
	}
	return out
}

// AverageDistance returns the mean delivery distance in kilometers, rounded
// to two decimals, ignoring outliers.
func AverageDistance(records []Record) (float64, error) {
	kept := withinRange(records)
	if len(kept) == 0 {
		return 0, emptyInput("average distance")
	}
	return round2(mean(column(kept, DeliveryDistance))), nil
}

// AverageDistanceByCity returns the mean delivery distance per city,
// ignoring outliers.
func AverageDistanceByCity(records []Record) []CityDistance {
	groups := groupBy(withinRange(records), func(r Record) string { return r.City }, stringLess)

	out := make([]CityDistance, 0, len(groups))
	for _, g := range groups {
		out = append(out, CityDistance{
			City:       g.Key,
			Kilometers: mean(column(g.Records, DeliveryDistance)),
		})
	}
	return out
}

// FestivalTimeStats returns delivery time statistics for orders whose
// festival flag equals flag, rounded to two decimals.
func FestivalTimeStats(records []Record, flag string) (TimeStats, error) {
	var minutes []float64
	for _, r := range records {
		if r.Festival == flag {
			minutes = append(minutes, minutesOf(r))
		}
	}
	if len(minutes) == 0 {
		return TimeStats{}, emptyInput("festival " + flag + " time stats")
	}

	m, s := meanStd(minutes)
	return TimeStats{Mean: round2(m), Std: round2(s)}, nil
}

// DeliveryTimeByCity summarizes delivery minutes per city.
func DeliveryTimeByCity(records []Record) []DeliveryTimeStats {
	groups := groupBy(records, func(r Record) string { return r.City }, stringLess)

	out := make([]DeliveryTimeStats, 0, len(groups))
	for _, g := range groups {
		st := timeStats(g.Records)
		st.City = g.Key
		out = append(out, st)
	}
	return out
}

// DeliveryTimeByCityTraffic summarizes delivery minutes per (city, traffic).
func DeliveryTimeByCityTraffic(records []Record) []DeliveryTimeStats {
	groups := groupBy(records, func(r Record) pair { return pair{r.City, r.Traffic} }, pairLess)

	out := make([]DeliveryTimeStats, 0, len(groups))
	for _, g := range groups {
		st := timeStats(g.Records)
		st.City, st.Traffic = g.Key.first, g.Key.second
		out = append(out, st)
	}
	return out
}

// DeliveryTimeByCityOrderType summarizes delivery minutes per
// (city, order type).
func DeliveryTimeByCityOrderType(records []Record) []DeliveryTimeStats {
	groups := groupBy(records, func(r Record) pair { return pair{r.City, r.OrderType} }, pairLess)

	out := make([]DeliveryTimeStats, 0, len(groups))
	for _, g := range groups {
		st := timeStats(g.Records)
		st.City, st.OrderType = g.Key.first, g.Key.second
		out = append(out, st)
	}
	return out
}

func timeStats(records []Record) DeliveryTimeStats {
	m, s := meanStd(column(records, minutesOf))
	return DeliveryTimeStats{Count: len(records), Mean: m, Std: s}
}
