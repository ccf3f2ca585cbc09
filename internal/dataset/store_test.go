package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	_ "github.com/gabrielpastega/delish-express-data-visualization/internal/core/tables"
)

// fakeSource serves a fixed frame or error, switchable between loads.
type fakeSource struct {
	mu    sync.Mutex
	rows  [][]string
	err   error
	loads int
}

func (f *fakeSource) Name() string { return "fake.csv" }

func (f *fakeSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return dataframe.DataFrame{}, f.err
	}
	return dataframe.LoadRecords(f.rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	), nil
}

func (f *fakeSource) set(rows [][]string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.err = rows, err
}

func rawRows(rows ...[]string) [][]string {
	header := make([]string, len(core.Schema))
	for i, spec := range core.Schema {
		header[i] = spec.Name
	}
	return append([][]string{header}, rows...)
}

func rawRow(id, date, traffic, city, minutes string) []string {
	return []string{
		id, "BANGRES18DEL02 ", "34", "4.5", "12.913041", "77.683237", "13.043041", "77.813237",
		date, "11:30:00", "11:45:00", "conditions Sunny", traffic + " ", "2", "Snack ",
		"motorcycle ", "0", "No ", city + " ", "(min) " + minutes,
	}
}

func TestStoreLoad(t *testing.T) {
	src := &fakeSource{rows: rawRows(
		rawRow("0x1", "19-03-2022", "High", "Urban", "24"),
		rawRow("0x2", "25-03-2022", "Jam", "NaN", "33"),
		rawRow("0x3", "05-04-2022", "Low", "Metropolitian", "26"),
	)}
	store := NewStore(src, 0)

	_, err := store.Current()
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, "DATA002", core.MapError(err).Code)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fake.csv", snap.Source)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 1, snap.Dropped)
	require.Len(t, snap.Records, 2)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, snap, current)

	info := snap.Info()
	assert.Equal(t, snap.ID.String(), info.ID)
	assert.Equal(t, 2, info.Records)
	require.NotNil(t, info.Span)
	assert.Equal(t, 19, info.Span.First.Day())
	assert.Equal(t, 5, info.Span.Last.Day())
}

func TestStoreFailedReloadKeepsSnapshot(t *testing.T) {
	src := &fakeSource{rows: rawRows(rawRow("0x1", "19-03-2022", "High", "Urban", "24"))}
	store := NewStore(src, 0)

	first, err := store.Load(context.Background())
	require.NoError(t, err)

	t.Run("source error", func(t *testing.T) {
		src.set(nil, errors.New("connection refused"))
		_, err := store.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, "SRC001", core.MapError(err).Code)

		current, err := store.Current()
		require.NoError(t, err)
		assert.Same(t, first, current)
	})

	t.Run("clean error", func(t *testing.T) {
		src.set(rawRows(rawRow("0x2", "2022-03-19", "High", "Urban", "24")), nil)
		_, err := store.Load(context.Background())
		assert.ErrorIs(t, err, core.ErrDateParse)

		current, err := store.Current()
		require.NoError(t, err)
		assert.Same(t, first, current)
	})

	t.Run("reload replaces snapshot", func(t *testing.T) {
		src.set(rawRows(
			rawRow("0x3", "20-03-2022", "Low", "Urban", "10"),
			rawRow("0x4", "21-03-2022", "Low", "Urban", "12"),
		), nil)
		store.Reload(context.Background())

		current, err := store.Current()
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, current.ID)
		assert.Len(t, current.Records, 2)
		assert.Len(t, first.Records, 1, "published snapshots are immutable")
	})
}

func TestStoreConcurrentReads(t *testing.T) {
	src := &fakeSource{rows: rawRows(rawRow("0x1", "19-03-2022", "High", "Urban", "24"))}
	store := NewStore(src, 0)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap, err := store.Current()
				if err != nil || len(snap.Records) == 0 {
					t.Error("reader saw an incomplete snapshot")
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		store.Reload(context.Background())
	}
	wg.Wait()

	assert.Equal(t, 6, src.loads)
}

func TestSnapshotQueries(t *testing.T) {
	src := &fakeSource{rows: rawRows(
		rawRow("0x1", "19-03-2022", "High", "Urban", "24"),
		rawRow("0x2", "25-03-2022", "Jam", "Urban", "30"),
		rawRow("0x3", "06-04-2022", "Low", "Metropolitian", "26"),
	)}
	snap, err := NewStore(src, 0).Load(context.Background())
	require.NoError(t, err)

	cutoff, err := core.ParseOrderDate("06-04-2022")
	require.NoError(t, err)
	filter := core.Filter{Cutoff: cutoff, Traffic: core.DefaultTraffic}

	view, err := snap.View(core.GroupOrders, filter)
	require.NoError(t, err)
	orders, ok := view.(core.OrdersView)
	require.True(t, ok)
	assert.Equal(t, 2, orders.Records)

	_, err = snap.View("weather", filter)
	assert.Equal(t, "TBL002", core.MapError(err).Code)

	def, rows, err := snap.Table("orders-per-day", filter)
	require.NoError(t, err)
	assert.Equal(t, core.GroupOrders, def.Info.Group)
	assert.Len(t, rows, 2)

	_, _, err = snap.Table("orders-per-month", filter)
	assert.Equal(t, "TBL001", core.MapError(err).Code)

	// A traffic set that matches nothing leaves scalar statistics undefined.
	_, err = snap.View(core.GroupRestaurants, core.Filter{Traffic: []string{}})
	assert.Equal(t, "DATA001", core.MapError(err).Code)
}
