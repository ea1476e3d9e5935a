package dashboard

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mls-insights/config"
	"mls-insights/models"
	"mls-insights/services"
)

const dateLayout = "2006-01-02"

// view is the data shared by the page, chart and export handlers: the primary
// snapshot, the optional context snapshot and the filtered sold subset.
type view struct {
	primary *services.Snapshot
	context *services.Snapshot
	filter  models.DashboardFilter
	sold    *models.ListingSet
}

// resolve returns the named dataset, or the primary one when name is empty.
func (s *Server) resolve(name string) (*services.Snapshot, *APIError) {
	if name == "" {
		return s.primary()
	}
	snap, err := s.store.Get(name)
	switch {
	case err == nil:
		return snap, nil
	case errors.Is(err, services.ErrUnknownDataset):
		return nil, NotFoundError("dataset " + name)
	default:
		s.logger.Warn("[dashboard] dataset %s unavailable: %v", name, err)
		return nil, ErrServiceUnavailable
	}
}

// primary falls back to the first loaded dataset when no primary-role dataset
// can be loaded.
func (s *Server) primary() (*services.Snapshot, *APIError) {
	if snap, err := s.store.ByRole(config.RolePrimary); err == nil {
		return snap, nil
	}
	if loaded := s.store.Loaded(); len(loaded) > 0 {
		return loaded[0], nil
	}
	return nil, ErrServiceUnavailable
}

// contextSnapshot returns nil when no context dataset is loaded.
func (s *Server) contextSnapshot() *services.Snapshot {
	snap, err := s.store.ByRole(config.RoleContext)
	if err != nil {
		return nil
	}
	return snap
}

// buildView resolves the datasets named by r and applies its filter query.
func (s *Server) buildView(r *http.Request) (*view, *APIError) {
	q := r.URL.Query()
	filter, apiErr := parseFilter(q)
	if apiErr != nil {
		return nil, apiErr
	}
	snap, apiErr := s.resolve(q.Get("dataset"))
	if apiErr != nil {
		return nil, apiErr
	}
	return &view{
		primary: snap,
		context: s.contextSnapshot(),
		filter:  filter,
		sold:    s.insights.ApplyFilters(snap.Data.Sold, filter),
	}, nil
}

// parseFilter reads from, to, type (repeatable), min_price and max_price.
func parseFilter(q url.Values) (models.DashboardFilter, *APIError) {
	var f models.DashboardFilter
	var err *APIError
	if f.From, err = parseDateParam(q, "from"); err != nil {
		return f, err
	}
	if f.To, err = parseDateParam(q, "to"); err != nil {
		return f, err
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, InvalidParameter("to", "must not be before from")
	}

	for _, t := range q["type"] {
		if t = strings.TrimSpace(t); t != "" {
			f.Types = append(f.Types, t)
		}
	}

	if f.MinPrice, err = parsePriceParam(q, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePriceParam(q, "max_price"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return f, InvalidParameter("max_price", "must not be below min_price")
	}
	return f, nil
}

func parseDateParam(q url.Values, name string) (time.Time, *APIError) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, InvalidParameter(name, "expected a date as YYYY-MM-DD")
	}
	return t, nil
}

func parsePriceParam(q url.Values, name string) (*float64, *APIError) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, InvalidParameter(name, "expected a non-negative number")
	}
	return &v, nil
}

// intParam reads an integer query parameter within [lo, hi], returning def
// when it is absent.
func intParam(q url.Values, name string, def, lo, hi int) (int, *APIError) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, InvalidParameter(name, "expected an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
	return v, nil
}
