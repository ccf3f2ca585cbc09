// Package core provides the cleaning and analytics logic for delivery orders.
//
// This package contains all domain logic independent of any UI, transport or
// storage layer. It can be used by web handlers, the CLI, or tests without
// modification.
//
// # Cleaning
//
// Raw rows arrive as text, either as [RawRecord] values or as a gota frame of
// string columns. [Clean] and [CleanFrame] drop rows holding the "NaN "
// marker in a sentinel-checked column, convert every typed column, and derive
// day of month and ISO week from the order date:
//
//	result, err := core.CleanFrame(frame)
//	if err != nil {
//	    var convErr *core.ConversionError
//	    if errors.As(err, &convErr) { ... }
//	}
//
// Anything other than the sentinel that fails to parse aborts the batch with a
// [ConversionError] or [DateParseError].
//
// # Analytics
//
// Aggregations are plain functions over []Record grouped by page:
//
//   - Orders: [OrdersPerDay], [TrafficShare], [CityTrafficVolume],
//     [OrdersPerWeek], [OrdersPerDriverWeekly], [CentralRegions]
//   - Drivers: [DriverProfile], [TopDrivers], [RatingsByDriver],
//     [RatingsByTraffic], [RatingsByWeather]
//   - Restaurants: [UniqueDrivers], [AverageDistance], [AverageDistanceByCity],
//     [FestivalTimeStats], [DeliveryTimeByCity], [DeliveryTimeByCityTraffic],
//     [DeliveryTimeByCityOrderType]
//
// Grouped results are sorted by group key. Grouped functions return an empty
// slice on empty input; scalar statistics return an [EmptyInputError].
//
// [Filter] narrows the record set by order date cutoff and traffic density
// before aggregation.
//
// # Table Registry
//
// Aggregations are registered by key via [Register] so the HTTP layer and the
// CLI can look them up and export them. The tables package registers the
// built-in set at init time.
//
// # Error Handling
//
// [MapError] converts technical errors to user-friendly messages with codes
// for support reference. See error_messages.go for the full code list.
package core
