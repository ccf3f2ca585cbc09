package tables

import "github.com/gabrielpastega/delish-express-data-visualization/internal/core"

func init() {
	registerDriverTables()
}

func registerDriverTables() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "driver-profile", Group: core.GroupDrivers, Label: "Fleet profile"},
		Build: func(records []core.Record) (any, error) {
			p, err := core.DriverProfile(records)
			if err != nil {
				return nil, err
			}
			return []core.DriverSummary{p}, nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "fastest-drivers", Group: core.GroupDrivers, Label: "Fastest drivers per city"},
		Build: func(records []core.Record) (any, error) {
			return core.TopDrivers(records, core.Fastest), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "slowest-drivers", Group: core.GroupDrivers, Label: "Slowest drivers per city"},
		Build: func(records []core.Record) (any, error) {
			return core.TopDrivers(records, core.Slowest), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "ratings-by-driver", Group: core.GroupDrivers, Label: "Mean rating per driver"},
		Build: func(records []core.Record) (any, error) {
			return core.RatingsByDriver(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "ratings-by-traffic", Group: core.GroupDrivers, Label: "Ratings by traffic density"},
		Build: func(records []core.Record) (any, error) {
			return core.RatingsByTraffic(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "ratings-by-weather", Group: core.GroupDrivers, Label: "Ratings by weather"},
		Build: func(records []core.Record) (any, error) {
			return core.RatingsByWeather(records), nil
		},
	})
}
