package web

import (
	"context"
	"net/http"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/dataset"
)

type snapshotKey struct{}

// withSnapshot pins the current dataset snapshot for the whole request, so a
// reload finishing mid-request cannot mix two snapshots in one response.
func (s *Server) withSnapshot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.store.Current()
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), snapshotKey{}, snap)))
	})
}

// snapshotFrom returns the snapshot pinned by withSnapshot.
func snapshotFrom(ctx context.Context) *dataset.Snapshot {
	snap, _ := ctx.Value(snapshotKey{}).(*dataset.Snapshot)
	return snap
}
