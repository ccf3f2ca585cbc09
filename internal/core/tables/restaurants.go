package tables

import "github.com/gabrielpastega/delish-express-data-visualization/internal/core"

// distanceRow is the single-row form of the global average distance.
type distanceRow struct {
	Kilometers float64 `json:"kilometers" csv:"kilometers"`
}

// festivalRow is one festival flag's delivery time statistics.
type festivalRow struct {
	Festival string  `json:"festival" csv:"festival"`
	Mean     float64 `json:"mean" csv:"mean"`
	Std      float64 `json:"std" csv:"std"`
}

// driverCountRow is the single-row form of the distinct driver count.
type driverCountRow struct {
	Drivers int `json:"drivers" csv:"drivers"`
}

func init() {
	registerRestaurantTables()
}

func registerRestaurantTables() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "unique-drivers", Group: core.GroupRestaurants, Label: "Distinct delivery people"},
		Build: func(records []core.Record) (any, error) {
			return []driverCountRow{{Drivers: core.UniqueDrivers(records)}}, nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "average-distance", Group: core.GroupRestaurants, Label: "Average delivery distance"},
		Build: func(records []core.Record) (any, error) {
			km, err := core.AverageDistance(records)
			if err != nil {
				return nil, err
			}
			return []distanceRow{{Kilometers: km}}, nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "average-distance-by-city", Group: core.GroupRestaurants, Label: "Average distance per city"},
		Build: func(records []core.Record) (any, error) {
			return core.AverageDistanceByCity(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info:  core.TableInfo{Key: "festival-time", Group: core.GroupRestaurants, Label: "Delivery time by festival"},
		Build: buildFestivalRows,
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "delivery-time-by-city", Group: core.GroupRestaurants, Label: "Delivery time per city"},
		Build: func(records []core.Record) (any, error) {
			return core.DeliveryTimeByCity(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "delivery-time-by-city-traffic", Group: core.GroupRestaurants, Label: "Delivery time per city and traffic"},
		Build: func(records []core.Record) (any, error) {
			return core.DeliveryTimeByCityTraffic(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "delivery-time-by-city-order-type", Group: core.GroupRestaurants, Label: "Delivery time per city and order type"},
		Build: func(records []core.Record) (any, error) {
			return core.DeliveryTimeByCityOrderType(records), nil
		},
	})
}

// buildFestivalRows reports both festival flags. A flag with no matching
// orders fails the table rather than producing a partial one.
func buildFestivalRows(records []core.Record) (any, error) {
	rows := make([]festivalRow, 0, 2)
	for _, flag := range []string{core.FestivalYes, core.FestivalNo} {
		st, err := core.FestivalTimeStats(records, flag)
		if err != nil {
			return nil, err
		}
		rows = append(rows, festivalRow{Festival: flag, Mean: st.Mean, Std: st.Std})
	}
	return rows, nil
}
