// Package web provides HTTP handlers for the delivery dashboard.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/dataset"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/web/templates"
)

// Filter query parameter errors.
var (
	errInvalidCutoff = errors.New("invalid cutoff")
	errBadExport     = errors.New("unsupported export format")
)

// parseFilter reads the cutoff and traffic query parameters.
//
// An absent parameter falls back to the configured default. A present but
// empty cutoff disables the date condition; a present but empty traffic
// list selects no orders. Traffic may be repeated or comma separated.
func parseFilter(r *http.Request, defaults config.FilterConfig) (core.Filter, error) {
	q := r.URL.Query()

	cutoff, err := defaults.CutoffDate()
	if err != nil {
		return core.Filter{}, fmt.Errorf("%w: %v", errInvalidCutoff, err)
	}
	if q.Has("cutoff") {
		cutoff = time.Time{}
		if v := strings.TrimSpace(q.Get("cutoff")); v != "" {
			cutoff, err = time.Parse(config.CutoffLayout, v)
			if err != nil {
				return core.Filter{}, fmt.Errorf("%w %q: want YYYY-MM-DD", errInvalidCutoff, v)
			}
		}
	}

	traffic := defaults.Traffic
	if q.Has("traffic") {
		traffic = []string{}
		for _, v := range q["traffic"] {
			for _, t := range strings.Split(v, ",") {
				if t = strings.TrimSpace(t); t != "" {
					traffic = append(traffic, t)
				}
			}
		}
	}
	if err := core.ValidateTraffic(traffic); err != nil {
		return core.Filter{}, err
	}

	return core.Filter{Cutoff: cutoff, Traffic: traffic}, nil
}

// filterState echoes a filter back into the page form.
func filterState(f core.Filter) templates.FilterState {
	state := templates.FilterState{
		Traffic: f.Traffic,
		Options: core.DefaultTraffic,
	}
	if f.Traffic == nil {
		state.Traffic = core.DefaultTraffic
	}
	if !f.Cutoff.IsZero() {
		state.Cutoff = f.Cutoff.Format(config.CutoffLayout)
	}
	return state
}

// datasetSummary converts snapshot metadata for the page header.
func datasetSummary(snap *dataset.Snapshot) templates.DatasetSummary {
	info := snap.Info()
	summary := templates.DatasetSummary{
		Source:   info.Source,
		LoadedAt: info.LoadedAt.Format(time.RFC1123),
		Total:    info.Total,
		Dropped:  info.Dropped,
		Records:  info.Records,
	}
	if info.Span != nil {
		summary.First = info.Span.First.Format(config.CutoffLayout)
		summary.Last = info.Span.Last.Format(config.CutoffLayout)
	}
	return summary
}

// clientIP returns the request's IP without the port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
