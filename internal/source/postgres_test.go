package source

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
)

// fakeRows serves string rows; nil cells scan as NULL.
type fakeRows struct {
	rows [][]*string
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		t, ok := d.(*pgtype.Text)
		if !ok {
			return errors.New("unexpected scan target")
		}
		if row[i] == nil {
			*t = pgtype.Text{}
		} else {
			*t = pgtype.Text{String: *row[i], Valid: true}
		}
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) { return nil, nil }

type fakeQuerier struct {
	rows  *fakeRows
	query string
	err   error
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.query = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSourceLoad(t *testing.T) {
	var data [][]*string
	for _, r := range sampleRows()[1:] {
		cells := make([]*string, len(r))
		for i := range r {
			cells[i] = &r[i]
		}
		data = append(data, cells)
	}
	// NULL city behaves like a missing value.
	data[0][len(data[0])-2] = nil

	q := &fakeQuerier{rows: &fakeRows{rows: data}}
	src := &PostgresSource{DB: q, Table: "public.deliveries"}

	df, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, df.Nrow())
	assert.Contains(t, q.query, `"Time_taken(min)"::text`)
	assert.Contains(t, q.query, `FROM "public"."deliveries"`)

	result, err := core.CleanFrame(df)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Dropped)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "0x5d6d", result.Records[0].ID)
}

func TestPostgresSourceErrors(t *testing.T) {
	ctx := context.Background()

	q := &fakeQuerier{err: errors.New(`ERROR: relation "deliveries" does not exist (SQLSTATE 42P01)`)}
	_, err := (&PostgresSource{DB: q, Table: "deliveries"}).Load(ctx)
	require.Error(t, err)
	assert.Equal(t, "SRC002", core.MapError(err).Code)

	empty := &fakeQuerier{rows: &fakeRows{}}
	_, err = (&PostgresSource{DB: empty, Table: "deliveries"}).Load(ctx)
	assert.ErrorIs(t, err, ErrEmptyFile)

	failing := &fakeQuerier{rows: &fakeRows{err: errors.New("conn closed")}}
	_, err = (&PostgresSource{DB: failing, Table: "deliveries"}).Load(ctx)
	assert.ErrorContains(t, err, "conn closed")
}
