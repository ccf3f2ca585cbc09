// Package core provides the cleaning and aggregation logic for delivery records.
// This package has no UI or storage dependencies and can be used by any frontend.
package core

import "time"

// Sentinel is the literal placeholder the source dataset uses for a missing value.
const Sentinel = "NaN "

// FieldType represents the expected data type for a raw column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldCategory
	FieldDate
	FieldInt
	FieldFloat
	FieldMinutes
)

// FieldSpec describes a single column of the raw delivery file.
type FieldSpec struct {
	Name     string    // Column header name (must match the source exactly)
	Type     FieldType // Target type after cleaning
	Required bool      // Column must exist in the source header
	Sentinel bool      // Rows holding the sentinel in this column are dropped
}

// Raw column names as they appear in the source dataset.
const (
	ColID               = "ID"
	ColDeliveryPersonID = "Delivery_person_ID"
	ColAge              = "Delivery_person_Age"
	ColRating           = "Delivery_person_Ratings"
	ColRestaurantLat    = "Restaurant_latitude"
	ColRestaurantLon    = "Restaurant_longitude"
	ColDeliveryLat      = "Delivery_location_latitude"
	ColDeliveryLon      = "Delivery_location_longitude"
	ColOrderDate        = "Order_Date"
	ColTimeOrdered      = "Time_Orderd"
	ColTimePicked       = "Time_Order_picked"
	ColWeather          = "Weatherconditions"
	ColTraffic          = "Road_traffic_density"
	ColVehicleCondition = "Vehicle_condition"
	ColOrderType        = "Type_of_order"
	ColVehicleType      = "Type_of_vehicle"
	ColMultiple         = "multiple_deliveries"
	ColFestival         = "Festival"
	ColCity             = "City"
	ColTimeTaken        = "Time_taken(min)"
)

// Schema lists every raw column the cleaner reads, in source order.
var Schema = []FieldSpec{
	{Name: ColID, Type: FieldText, Required: true},
	{Name: ColDeliveryPersonID, Type: FieldText, Required: true},
	{Name: ColAge, Type: FieldInt, Required: true, Sentinel: true},
	{Name: ColRating, Type: FieldFloat, Required: true},
	{Name: ColRestaurantLat, Type: FieldFloat, Required: true},
	{Name: ColRestaurantLon, Type: FieldFloat, Required: true},
	{Name: ColDeliveryLat, Type: FieldFloat, Required: true},
	{Name: ColDeliveryLon, Type: FieldFloat, Required: true},
	{Name: ColOrderDate, Type: FieldDate, Required: true},
	{Name: ColTimeOrdered, Type: FieldText, Required: true, Sentinel: true},
	{Name: ColTimePicked, Type: FieldText},
	{Name: ColWeather, Type: FieldCategory, Required: true},
	{Name: ColTraffic, Type: FieldCategory, Required: true, Sentinel: true},
	{Name: ColVehicleCondition, Type: FieldInt, Required: true},
	{Name: ColOrderType, Type: FieldCategory, Required: true},
	{Name: ColVehicleType, Type: FieldCategory, Required: true},
	{Name: ColMultiple, Type: FieldInt, Required: true, Sentinel: true},
	{Name: ColFestival, Type: FieldCategory, Required: true, Sentinel: true},
	{Name: ColCity, Type: FieldCategory, Required: true, Sentinel: true},
	{Name: ColTimeTaken, Type: FieldMinutes, Required: true},
}

// SentinelColumns returns the columns whose sentinel value drops the whole row.
func SentinelColumns() []string {
	var cols []string
	for _, spec := range Schema {
		if spec.Sentinel {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// HeaderIndex maps column names to their position in a raw row.
type HeaderIndex map[string]int

// RawRecord is one delivery order as ingested. Every field is untyped text.
type RawRecord struct {
	Line                      int    `csv:"-"`
	ID                        string `csv:"ID"`
	DeliveryPersonID          string `csv:"Delivery_person_ID"`
	Age                       string `csv:"Delivery_person_Age"`
	Rating                    string `csv:"Delivery_person_Ratings"`
	RestaurantLatitude        string `csv:"Restaurant_latitude"`
	RestaurantLongitude       string `csv:"Restaurant_longitude"`
	DeliveryLocationLatitude  string `csv:"Delivery_location_latitude"`
	DeliveryLocationLongitude string `csv:"Delivery_location_longitude"`
	OrderDate                 string `csv:"Order_Date"`
	TimeOrdered               string `csv:"Time_Orderd"`
	TimePicked                string `csv:"Time_Order_picked"`
	Weather                   string `csv:"Weatherconditions"`
	Traffic                   string `csv:"Road_traffic_density"`
	VehicleCondition          string `csv:"Vehicle_condition"`
	OrderType                 string `csv:"Type_of_order"`
	VehicleType               string `csv:"Type_of_vehicle"`
	MultipleDeliveries        string `csv:"multiple_deliveries"`
	Festival                  string `csv:"Festival"`
	City                      string `csv:"City"`
	TimeTaken                 string `csv:"Time_taken(min)"`
}

// Field returns the raw value of the named column.
// Unknown column names return an empty string.
func (r RawRecord) Field(name string) string {
	switch name {
	case ColID:
		return r.ID
	case ColDeliveryPersonID:
		return r.DeliveryPersonID
	case ColAge:
		return r.Age
	case ColRating:
		return r.Rating
	case ColRestaurantLat:
		return r.RestaurantLatitude
	case ColRestaurantLon:
		return r.RestaurantLongitude
	case ColDeliveryLat:
		return r.DeliveryLocationLatitude
	case ColDeliveryLon:
		return r.DeliveryLocationLongitude
	case ColOrderDate:
		return r.OrderDate
	case ColTimeOrdered:
		return r.TimeOrdered
	case ColTimePicked:
		return r.TimePicked
	case ColWeather:
		return r.Weather
	case ColTraffic:
		return r.Traffic
	case ColVehicleCondition:
		return r.VehicleCondition
	case ColOrderType:
		return r.OrderType
	case ColVehicleType:
		return r.VehicleType
	case ColMultiple:
		return r.MultipleDeliveries
	case ColFestival:
		return r.Festival
	case ColCity:
		return r.City
	case ColTimeTaken:
		return r.TimeTaken
	default:
		return ""
	}
}

// setField assigns the raw value of the named column.
func (r *RawRecord) setField(name, value string) {
	switch name {
	case ColID:
		r.ID = value
	case ColDeliveryPersonID:
		r.DeliveryPersonID = value
	case ColAge:
		r.Age = value
	case ColRating:
		r.Rating = value
	case ColRestaurantLat:
		r.RestaurantLatitude = value
	case ColRestaurantLon:
		r.RestaurantLongitude = value
	case ColDeliveryLat:
		r.DeliveryLocationLatitude = value
	case ColDeliveryLon:
		r.DeliveryLocationLongitude = value
	case ColOrderDate:
		r.OrderDate = value
	case ColTimeOrdered:
		r.TimeOrdered = value
	case ColTimePicked:
		r.TimePicked = value
	case ColWeather:
		r.Weather = value
	case ColTraffic:
		r.Traffic = value
	case ColVehicleCondition:
		r.VehicleCondition = value
	case ColOrderType:
		r.OrderType = value
	case ColVehicleType:
		r.VehicleType = value
	case ColMultiple:
		r.MultipleDeliveries = value
	case ColFestival:
		r.Festival = value
	case ColCity:
		r.City = value
	case ColTimeTaken:
		r.TimeTaken = value
	}
}

// Record is a cleaned, typed delivery order.
//
// Records are produced once per load by the cleaner and never modified
// afterwards; filters build new slices instead.
type Record struct {
	ID                        string    `csv:"ID" json:"id"`
	DeliveryPersonID          string    `csv:"Delivery_person_ID" json:"delivery_person_id"`
	Age                       int       `csv:"Delivery_person_Age" json:"age"`
	Rating                    float64   `csv:"Delivery_person_Ratings" json:"rating"`
	RestaurantLatitude        float64   `csv:"Restaurant_latitude" json:"restaurant_latitude"`
	RestaurantLongitude       float64   `csv:"Restaurant_longitude" json:"restaurant_longitude"`
	DeliveryLocationLatitude  float64   `csv:"Delivery_location_latitude" json:"delivery_latitude"`
	DeliveryLocationLongitude float64   `csv:"Delivery_location_longitude" json:"delivery_longitude"`
	OrderDate                 time.Time `csv:"Order_Date" json:"order_date"`
	TimeOrdered               string    `csv:"Time_Orderd" json:"time_ordered"`
	TimePicked                string    `csv:"Time_Order_picked" json:"time_picked"`
	Weather                   string    `csv:"Weatherconditions" json:"weather"`
	Traffic                   string    `csv:"Road_traffic_density" json:"traffic"`
	VehicleCondition          int       `csv:"Vehicle_condition" json:"vehicle_condition"`
	OrderType                 string    `csv:"Type_of_order" json:"order_type"`
	VehicleType               string    `csv:"Type_of_vehicle" json:"vehicle_type"`
	MultipleDeliveries        int       `csv:"multiple_deliveries" json:"multiple_deliveries"`
	Festival                  string    `csv:"Festival" json:"festival"`
	City                      string    `csv:"City" json:"city"`
	DeliveryMinutes           int       `csv:"Time_taken(min)" json:"delivery_minutes"`
	Day                       int       `csv:"Order_Date_Day" json:"day"`
	Week                      int       `csv:"Week_Of_Year" json:"week"`
}

// CleanResult is the output of cleaning a raw frame.
type CleanResult struct {
	Records []Record
	Total   int // Raw rows read from the source
	Dropped int // Rows removed because a sentinel-checked field was missing
}
