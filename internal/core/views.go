package core

import "errors"

// Analytics page names, also used as table registry groups.
const (
	GroupOrders      = "orders"
	GroupDrivers     = "drivers"
	GroupRestaurants = "restaurants"
)

// OrdersView bundles the company-level order analytics.
type OrdersView struct {
	Records               int                `json:"records"`
	OrdersPerDay          []DayCount         `json:"orders_per_day"`
	TrafficShare          []TrafficCount     `json:"traffic_share"`
	CityTrafficVolume     []CityTrafficCount `json:"city_traffic_volume"`
	OrdersPerWeek         []WeekCount        `json:"orders_per_week"`
	OrdersPerDriverWeekly []WeeklyDriverLoad `json:"orders_per_driver_weekly"`
	CentralRegions        []RegionPoint      `json:"central_regions"`
}

// DriversView bundles the delivery person analytics.
type DriversView struct {
	Records          int            `json:"records"`
	Profile          DriverSummary  `json:"profile"`
	RatingsByDriver  []DriverRating `json:"ratings_by_driver"`
	RatingsByTraffic []RatingStats  `json:"ratings_by_traffic"`
	RatingsByWeather []RatingStats  `json:"ratings_by_weather"`
	FastestDrivers   []DriverSpeed  `json:"fastest_drivers"`
	SlowestDrivers   []DriverSpeed  `json:"slowest_drivers"`
}

// RestaurantsView bundles the restaurant analytics. Scalar statistics with
// no matching rows are nil.
type RestaurantsView struct {
	Records                     int                 `json:"records"`
	UniqueDrivers               int                 `json:"unique_drivers"`
	AverageDistance             *float64            `json:"average_distance_km"`
	AverageDistanceByCity       []CityDistance      `json:"average_distance_by_city"`
	FestivalTime                *TimeStats          `json:"festival_time"`
	RegularTime                 *TimeStats          `json:"regular_time"`
	DeliveryTimeByCity          []DeliveryTimeStats `json:"delivery_time_by_city"`
	DeliveryTimeByCityTraffic   []DeliveryTimeStats `json:"delivery_time_by_city_traffic"`
	DeliveryTimeByCityOrderType []DeliveryTimeStats `json:"delivery_time_by_city_order_type"`
}

// BuildOrdersView computes every order table. An empty input yields empty tables.
func BuildOrdersView(records []Record) OrdersView {
	return OrdersView{
		Records:               len(records),
		OrdersPerDay:          OrdersPerDay(records),
		TrafficShare:          TrafficShare(records),
		CityTrafficVolume:     CityTrafficVolume(records),
		OrdersPerWeek:         OrdersPerWeek(records),
		OrdersPerDriverWeekly: OrdersPerDriverWeekly(records),
		CentralRegions:        CentralRegions(records),
	}
}

// BuildDriversView computes every driver table.
// Returns an EmptyInputError when records is empty.
func BuildDriversView(records []Record) (DriversView, error) {
	profile, err := DriverProfile(records)
	if err != nil {
		return DriversView{}, err
	}

	return DriversView{
		Records:          len(records),
		Profile:          profile,
		RatingsByDriver:  RatingsByDriver(records),
		RatingsByTraffic: RatingsByTraffic(records),
		RatingsByWeather: RatingsByWeather(records),
		FastestDrivers:   TopDrivers(records, Fastest),
		SlowestDrivers:   TopDrivers(records, Slowest),
	}, nil
}

// BuildRestaurantsView computes every restaurant table.
// Returns an EmptyInputError when records is empty.
func BuildRestaurantsView(records []Record) (RestaurantsView, error) {
	if len(records) == 0 {
		return RestaurantsView{}, emptyInput("restaurants view")
	}

	view := RestaurantsView{
		Records:                     len(records),
		UniqueDrivers:               UniqueDrivers(records),
		AverageDistanceByCity:       AverageDistanceByCity(records),
		DeliveryTimeByCity:          DeliveryTimeByCity(records),
		DeliveryTimeByCityTraffic:   DeliveryTimeByCityTraffic(records),
		DeliveryTimeByCityOrderType: DeliveryTimeByCityOrderType(records),
	}

	var err error
	if view.AverageDistance, err = optional(AverageDistance(records)); err != nil {
		return RestaurantsView{}, err
	}
	if view.FestivalTime, err = optional(FestivalTimeStats(records, FestivalYes)); err != nil {
		return RestaurantsView{}, err
	}
	if view.RegularTime, err = optional(FestivalTimeStats(records, FestivalNo)); err != nil {
		return RestaurantsView{}, err
	}

	return view, nil
}

// optional turns an EmptyInputError into a nil result.
func optional[T any](v T, err error) (*T, error) {
	if errors.Is(err, ErrEmptyInput) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
