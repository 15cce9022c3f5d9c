// Package http serves the dashboard UI and its JSON API.
//
// This file parses and validates the filter parameters shared by every
// section endpoint: a year range and a category selection.
package http

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"livingcost/internal/coicop"
	"livingcost/internal/core"
)

// parseFilter extracts the year range and category selection from the
// query string. Years are clamped to the loaded data's bounds and an
// inverted range is swapped rather than rejected. Categories arrive as
// short display names; unknown names are dropped silently. A missing
// categories parameter selects everything, an explicitly empty one
// selects nothing.
func parseFilter(r *http.Request, minYear, maxYear int) core.Filter {
	// The raw extracts run wider than the analysis window; the
	// dashboard is fixed to 2015-2024 regardless of what the files hold.
	if minYear < coicop.MinYear {
		minYear = coicop.MinYear
	}
	if maxYear > coicop.MaxYear {
		maxYear = coicop.MaxYear
	}

	q := r.URL.Query()

	from := parseYear(q.Get("from"), minYear, minYear, maxYear)
	to := parseYear(q.Get("to"), maxYear, minYear, maxYear)
	if from > to {
		from, to = to, from
	}

	f := core.Filter{From: from, To: to}

	if !q.Has("categories") {
		f.Categories = append([]string(nil), coicop.Categories...)
		return f
	}

	f.Categories = []string{}
	seen := map[string]bool{}
	for _, raw := range q["categories"] {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			full := coicop.FullName(name)
			if full == "" || seen[full] {
				continue
			}
			seen[full] = true
			f.Categories = append(f.Categories, full)
		}
	}
	return f
}

func parseYear(s string, fallback, min, max int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	if y < min {
		return min
	}
	if y > max {
		return max
	}
	return y
}

// filterKey builds a stable cache key for a filter. Categories are
// sorted so the same selection in a different order hits the same
// entry.
func filterKey(section string, f core.Filter) string {
	cats := make([]string, len(f.Categories))
	copy(cats, f.Categories)
	sort.Strings(cats)

	var b strings.Builder
	b.WriteString(section)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(f.From))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(f.To))
	b.WriteByte('|')
	b.WriteString(strings.Join(cats, ","))
	return b.String()
}
