// Package dataset holds the cleaned delivery records currently served by the
// application.
//
// A Store loads the raw dataset from a source.Source, cleans it with
// core.CleanFrame and publishes the result as an immutable Snapshot. Readers
// always see a complete snapshot; a reload builds the next one on the side and
// swaps it in only when cleaning succeeds.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/source"
)

// ErrNotLoaded is returned by Current before the first successful load.
var ErrNotLoaded = errors.New("no dataset loaded")

// DefaultLoadTimeout bounds a single load when the store is created without one.
const DefaultLoadTimeout = 2 * time.Minute

// Snapshot is one cleaned canonical set with its load metadata.
// Snapshots are never modified after they are published.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Total    int // Raw rows read
	Dropped  int // Rows removed by the sentinel filter
	Records  []core.Record
}

// Info is the JSON summary of a snapshot.
type Info struct {
	ID       string         `json:"id"`
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Total    int            `json:"total"`
	Dropped  int            `json:"dropped"`
	Records  int            `json:"records"`
	Span     *core.DateSpan `json:"span,omitempty"`
}

// Info summarizes the snapshot. Span is nil when every row was dropped.
func (s *Snapshot) Info() Info {
	info := Info{
		ID:       s.ID.String(),
		Source:   s.Source,
		LoadedAt: s.LoadedAt,
		Total:    s.Total,
		Dropped:  s.Dropped,
		Records:  len(s.Records),
	}
	if span, err := core.DateRange(s.Records); err == nil {
		info.Span = &span
	}
	return info
}

// Store publishes the latest snapshot of a source.
type Store struct {
	src     source.Source
	timeout time.Duration

	mu      sync.Mutex // serializes loads
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewStore creates a store for src. A non-positive timeout uses DefaultLoadTimeout.
func NewStore(src source.Source, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Store{
		src:     src,
		timeout: timeout,
		now:     time.Now,
	}
}

// Source returns the name of the underlying source.
func (s *Store) Source() string {
	return s.src.Name()
}

// Current returns the latest published snapshot.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Load reads and cleans the source, then publishes the result.
// On failure the previously published snapshot stays current.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id := uuid.New()
	logger := logging.WithFields(ctx,
		"snapshot_id", id.String(),
		"source", s.src.Name(),
	)
	logger.Info("dataset load started")
	start := s.now()

	df, err := s.src.Load(ctx)
	if err != nil {
		logger.Error("dataset load failed", "stage", "read", "error", err)
		return nil, fmt.Errorf("load %s: %w", s.src.Name(), err)
	}

	result, err := core.CleanFrame(df)
	if err != nil {
		logger.Error("dataset load failed", "stage", "clean", "error", err)
		return nil, fmt.Errorf("clean %s: %w", s.src.Name(), err)
	}

	// A load that outlived its deadline is discarded even if cleaning finished.
	if err := ctx.Err(); err != nil {
		logger.Error("dataset load failed", "stage", "publish", "error", err)
		return nil, fmt.Errorf("load %s: %w", s.src.Name(), err)
	}

	snap := &Snapshot{
		ID:       id,
		Source:   s.src.Name(),
		LoadedAt: s.now(),
		Total:    result.Total,
		Dropped:  result.Dropped,
		Records:  result.Records,
	}
	s.current.Store(snap)

	logger.Info("dataset load completed",
		"rows", len(snap.Records),
		"dropped", snap.Dropped,
		"duration_ms", snap.LoadedAt.Sub(start).Milliseconds(),
	)

	return snap, nil
}

// Reload is Load for callbacks that only log failures, such as the file watcher.
func (s *Store) Reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		logging.FromContext(ctx).Warn("dataset reload failed, keeping previous snapshot", "error", err)
	}
}
