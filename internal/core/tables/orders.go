package tables

import "github.com/gabrielpastega/delish-express-data-visualization/internal/core"

func init() {
	registerOrderTables()
}

func registerOrderTables() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "orders-per-day", Group: core.GroupOrders, Label: "Orders per day"},
		Build: func(records []core.Record) (any, error) {
			return core.OrdersPerDay(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "traffic-share", Group: core.GroupOrders, Label: "Orders by traffic density"},
		Build: func(records []core.Record) (any, error) {
			return core.TrafficShare(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "city-traffic-volume", Group: core.GroupOrders, Label: "Orders by city and traffic"},
		Build: func(records []core.Record) (any, error) {
			return core.CityTrafficVolume(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "orders-per-week", Group: core.GroupOrders, Label: "Orders per week"},
		Build: func(records []core.Record) (any, error) {
			return core.OrdersPerWeek(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "orders-per-driver-weekly", Group: core.GroupOrders, Label: "Weekly orders per driver"},
		Build: func(records []core.Record) (any, error) {
			return core.OrdersPerDriverWeekly(records), nil
		},
	})
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "central-regions", Group: core.GroupOrders, Label: "Central delivery regions"},
		Build: func(records []core.Record) (any, error) {
			return core.CentralRegions(records), nil
		},
	})
}
