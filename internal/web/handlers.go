package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/export"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/web/templates"
)

// handleHome renders the overview page with the table index.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	snap := snapshotFrom(r.Context())

	var groups []templates.TableGroup
	for _, group := range core.Groups() {
		defs := core.ByGroup(group)
		links := make([]templates.TableLink, len(defs))
		for i, def := range defs {
			links[i] = templates.TableLink{Key: def.Info.Key, Label: def.Info.Label}
		}
		groups = append(groups, templates.TableGroup{
			Name:   group,
			Href:   "/" + group,
			Tables: links,
		})
	}

	render(w, r, templates.Home(datasetSummary(snap), groups))
}

// handleViewPage renders every table of one view group.
//
// A table that cannot be built for the current filter, for example a mean
// over no orders, is shown with its error message instead of failing the
// whole page.
func (s *Server) handleViewPage(group, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r, s.cfg.Filter)
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}

		snap := snapshotFrom(r.Context())
		logger := logging.FromContext(r.Context())

		var tables []templates.DataTable
		for _, def := range core.ByGroup(group) {
			t := templates.DataTable{Key: def.Info.Key, Label: def.Info.Label}

			_, rows, err := snap.Table(def.Info.Key, filter)
			if err == nil {
				t.Records, err = export.Records(rows)
			}
			if err != nil {
				logger.Debug("table unavailable", "table", def.Info.Key, "error", err)
				t.Err = core.MapError(err).Message
			}

			tables = append(tables, t)
		}

		render(w, r, templates.ViewPage(title, "/"+group, datasetSummary(snap), filterState(filter), tables))
	}
}

// render writes an HTML component, logging failures after headers are sent.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
