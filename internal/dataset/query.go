package dataset

import (
	"errors"
	"fmt"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
)

// Errors returned for names that match no view or registered table.
var (
	ErrUnknownView  = errors.New("unknown view")
	ErrUnknownTable = errors.New("unknown table")
)

// View builds one of the dashboard views over the filtered records.
// Valid names are core.GroupOrders, core.GroupDrivers and core.GroupRestaurants.
func (s *Snapshot) View(name string, f core.Filter) (any, error) {
	records := f.Apply(s.Records)

	switch name {
	case core.GroupOrders:
		return core.BuildOrdersView(records), nil
	case core.GroupDrivers:
		return core.BuildDriversView(records)
	case core.GroupRestaurants:
		return core.BuildRestaurantsView(records)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}

// Table builds a single registered aggregation table over the filtered records.
func (s *Snapshot) Table(key string, f core.Filter) (core.TableDefinition, any, error) {
	def, ok := core.Get(key)
	if !ok {
		return core.TableDefinition{}, nil, fmt.Errorf("%w: %q", ErrUnknownTable, key)
	}

	rows, err := def.Build(f.Apply(s.Records))
	if err != nil {
		return def, nil, fmt.Errorf("build %s: %w", key, err)
	}
	return def, rows, nil
}
