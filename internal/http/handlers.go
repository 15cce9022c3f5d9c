package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"livingcost/internal/charts"
	"livingcost/internal/coicop"
	"livingcost/internal/core"
	applog "livingcost/internal/log"
)

// sectionResponse is the envelope every section endpoint returns: the
// analytical table plus an optional Vega-Lite spec rendered client-side.
type sectionResponse struct {
	Table any          `json:"table"`
	Chart *charts.Spec `json:"chart,omitempty"`
}

const sectionTimeout = 10 * time.Second

// serveSection handles the shared caching and serialization for a
// section endpoint. compute runs only on cache miss.
func (s *Server) serveSection(w http.ResponseWriter, r *http.Request, section string, compute func(ctx context.Context, f core.Filter) (*sectionResponse, error)) {
	meta, err := s.analytics.Meta(r.Context())
	if err != nil {
		s.writeError(w, r, "load dataset metadata", err)
		return
	}

	f := parseFilter(r, meta.MinYear, meta.MaxYear)
	key := filterKey(section, f)

	if body, ok := s.responseCache.Get(key); ok {
		s.slogger.LogSectionServed(r.Context(), section, f.From, f.To, len(f.Categories), true)
		writeJSONBytes(w, body)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sectionTimeout)
	defer cancel()

	resp, err := compute(ctx, f)
	if err != nil {
		s.writeError(w, r, "compute "+section, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, r, "encode "+section, err)
		return
	}

	s.responseCache.Set(key, body)
	s.slogger.LogSectionServed(r.Context(), section, f.From, f.To, len(f.Categories), false)
	writeJSONBytes(w, body)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.analytics.Meta(r.Context())
	if err != nil {
		s.writeError(w, r, "load dataset metadata", err)
		return
	}
	writeJSON(w, meta)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "changes", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Changes(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.ChangesBar(result.Changes, coicop.EssentialColor, coicop.NonEssentialColor),
		}, nil
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "trends", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Trends(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.TrendLines(result.Points),
		}, nil
	})
}

func (s *Server) handleYoY(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "yoy", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.YoY(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.YoYHeatmap(result.Monthly),
		}, nil
	})
}

func (s *Server) handleRegional(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "regional", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Regional(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.RegionalBars(result.Records),
		}, nil
	})
}

func (s *Server) handleEssentials(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "essentials", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Essentials(ctx, f)
		if err != nil {
			return nil, err
		}
		combined := make([]core.CategoryChange, 0, len(result.Essential)+len(result.NonEssential))
		combined = append(combined, result.Essential...)
		combined = append(combined, result.NonEssential...)
		return &sectionResponse{
			Table: result,
			Chart: charts.ChangesBar(combined, coicop.EssentialColor, coicop.NonEssentialColor),
		}, nil
	})
}

func (s *Server) handleBurden(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "burden", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Burden(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.BurdenBars(result.Burdens),
		}, nil
	})
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "spending", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Spending(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.SpendingArea(result.Shares),
		}, nil
	})
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	// Optional period name narrows the breakdown to one interval. The
	// selection is folded into the cache key via the section name.
	section := "periods"
	periodName := ""
	if p, ok := coicop.PeriodByName(r.URL.Query().Get("period")); ok {
		periodName = p.Name
		section = "periods:" + p.Name
	}

	s.serveSection(w, r, section, func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Periods(ctx, f)
		if err != nil {
			return nil, err
		}
		if periodName != "" {
			kept := result.Changes[:0]
			for _, c := range result.Changes {
				if c.Period == periodName {
					kept = append(kept, c)
				}
			}
			result.Changes = kept
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.PeriodBars(result.Changes),
		}, nil
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	s.serveSection(w, r, "insights", func(ctx context.Context, f core.Filter) (*sectionResponse, error) {
		result, err := s.analytics.Insights(ctx, f)
		if err != nil {
			return nil, err
		}
		return &sectionResponse{
			Table: result,
			Chart: charts.IncomeLines(result.DisposableIncome),
		}, nil
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.slogger.LogError(r.Context(), "Request failed", err, applog.ComponentHTTP, op,
		applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "", ""))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
}
