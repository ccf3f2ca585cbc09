package core

// DayCount is the number of orders placed on one day of the month.
type DayCount struct {
	Day    int `json:"day" csv:"day"`
	Orders int `json:"orders" csv:"orders"`
}

// TrafficCount is the order volume of one traffic density and its share of
// the total.
type TrafficCount struct {
	Traffic string  `json:"traffic" csv:"traffic"`
	Orders  int     `json:"orders" csv:"orders"`
	Share   float64 `json:"share" csv:"share"`
}

// CityTrafficCount is the order volume of one (city, traffic) combination.
type CityTrafficCount struct {
	City    string `json:"city" csv:"city"`
	Traffic string `json:"traffic" csv:"traffic"`
	Orders  int    `json:"orders" csv:"orders"`
}

// WeekCount is the number of orders placed in one ISO week.
type WeekCount struct {
	Week   int `json:"week" csv:"week"`
	Orders int `json:"orders" csv:"orders"`
}

// WeeklyDriverLoad relates weekly orders to the drivers active that week.
type WeeklyDriverLoad struct {
	Week            int     `json:"week" csv:"week"`
	Orders          int     `json:"orders" csv:"orders"`
	Drivers         int     `json:"drivers" csv:"drivers"`
	OrdersPerDriver float64 `json:"orders_per_driver" csv:"orders_per_driver"`
}

// RegionPoint is the central delivery location of one (city, traffic)
// combination.
type RegionPoint struct {
	City      string  `json:"city" csv:"city"`
	Traffic   string  `json:"traffic" csv:"traffic"`
	Latitude  float64 `json:"latitude" csv:"latitude"`
	Longitude float64 `json:"longitude" csv:"longitude"`
}

// OrdersPerDay counts orders by day of month.
func OrdersPerDay(records []Record) []DayCount {
	groups := groupBy(records, func(r Record) int { return r.Day }, intLess)

	out := make([]DayCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, DayCount{Day: g.Key, Orders: len(g.Records)})
	}
	return out
}

// TrafficShare counts orders by traffic density. Shares of a non-empty input
// sum to 1.
func TrafficShare(records []Record) []TrafficCount {
	groups := groupBy(records, func(r Record) string { return r.Traffic }, stringLess)

	out := make([]TrafficCount, 0, len(groups))
	total := float64(len(records))
	for _, g := range groups {
		out = append(out, TrafficCount{
			Traffic: g.Key,
			Orders:  len(g.Records),
			Share:   float64(len(g.Records)) / total,
		})
	}
	return out
}

// CityTrafficVolume counts orders by (city, traffic density).
func CityTrafficVolume(records []Record) []CityTrafficCount {
	groups := groupBy(records, func(r Record) pair { return pair{r.City, r.Traffic} }, pairLess)

	out := make([]CityTrafficCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, CityTrafficCount{
			City:    g.Key.first,
			Traffic: g.Key.second,
			Orders:  len(g.Records),
		})
	}
	return out
}

// OrdersPerWeek counts orders by ISO week.
func OrdersPerWeek(records []Record) []WeekCount {
	groups := groupBy(records, func(r Record) int { return r.Week }, intLess)

	out := make([]WeekCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, WeekCount{Week: g.Key, Orders: len(g.Records)})
	}
	return out
}

// OrdersPerDriverWeekly divides each week's orders by the number of distinct
// delivery people seen that week. Weeks without orders are absent.
func OrdersPerDriverWeekly(records []Record) []WeeklyDriverLoad {
	groups := groupBy(records, func(r Record) int { return r.Week }, intLess)

	out := make([]WeeklyDriverLoad, 0, len(groups))
	for _, g := range groups {
		drivers := UniqueDrivers(g.Records)
		out = append(out, WeeklyDriverLoad{
			Week:            g.Key,
			Orders:          len(g.Records),
			Drivers:         drivers,
			OrdersPerDriver: float64(len(g.Records)) / float64(drivers),
		})
	}
	return out
}

// CentralRegions returns the median delivery location of every
// (city, traffic) combination. Cities are not merged across traffic levels.
func CentralRegions(records []Record) []RegionPoint {
	groups := groupBy(records, func(r Record) pair { return pair{r.City, r.Traffic} }, pairLess)

	out := make([]RegionPoint, 0, len(groups))
	for _, g := range groups {
		lat := column(g.Records, func(r Record) float64 { return r.DeliveryLocationLatitude })
		lon := column(g.Records, func(r Record) float64 { return r.DeliveryLocationLongitude })
		out = append(out, RegionPoint{
			City:      g.Key.first,
			Traffic:   g.Key.second,
			Latitude:  median(lat),
			Longitude: median(lon),
		})
	}
	return out
}
