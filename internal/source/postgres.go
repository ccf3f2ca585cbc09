package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
)

// Querier is the subset of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads raw delivery rows from a PostgreSQL table whose
// column names match the raw file header. Every column is read as text and
// NULL becomes an empty cell.
type PostgresSource struct {
	DB    Querier
	Table string

	pool *pgxpool.Pool
}

// NewPostgresSource connects a pool using the database settings.
func NewPostgresSource(ctx context.Context, cfg config.DatabaseConfig) (*PostgresSource, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresSource{DB: pool, Table: cfg.Table, pool: pool}, nil
}

// Name returns the table name.
func (s *PostgresSource) Name() string { return "postgres:" + s.Table }

// Close releases the connection pool, if this source owns one.
func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Load selects every schema column of the table as text.
func (s *PostgresSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	header := make([]string, len(core.Schema))
	for i, spec := range core.Schema {
		header[i] = spec.Name
	}

	rows, err := s.DB.Query(ctx, selectQuery(s.Table, header))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	records := [][]string{header}
	cells := make([]pgtype.Text, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("scan %s row %d: %w", s.Table, len(records), err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", s.Table, err)
	}

	df, err := frameFromRecords(records)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load %s: %w", s.Table, err)
	}

	slog.Debug("postgres dataset read", "table", s.Table, "rows", df.Nrow())

	return df, nil
}

// selectQuery builds the text projection of the raw columns.
func selectQuery(table string, columns []string) string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = pgx.Identifier{c}.Sanitize() + "::text"
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), pgx.Identifier(strings.Split(table, ".")).Sanitize())
}
