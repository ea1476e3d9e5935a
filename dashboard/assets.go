package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gonum.org/v1/plot"

	"mls-insights/charts"
	"mls-insights/services"
	"mls-insights/storage"
)

type chartKind int

const (
	chartTrend chartKind = iota
	chartScatter
	chartYoY
	chartPeriods
)

// handleChart renders one PNG over the filtered sold subset. A chart with
// nothing to plot is a 404 so the page can fall back to its placeholder.
func (s *Server) handleChart(kind chartKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, apiErr := s.buildView(r)
		if apiErr != nil {
			renderError(w, r, apiErr)
			return
		}

		var (
			p   *plot.Plot
			err error
		)
		switch kind {
		case chartTrend:
			p, err = charts.Trend(s.insights.MonthlyTrend(v.sold))
		case chartScatter:
			p, err = charts.Scatter(v.sold)
		case chartYoY:
			p, err = charts.YearOverYear(s.insights.YearOverYear(v.sold))
		case chartPeriods:
			p, err = charts.Periods(s.insights.PeriodComparison(v.sold, services.DefaultPeriods))
		}
		if errors.Is(err, charts.ErrNoData) {
			renderError(w, r, NotFoundError("chart data"))
			return
		}
		if err != nil {
			s.logger.Error("[dashboard] chart: %v", err)
			renderError(w, r, ErrInternalServer)
			return
		}

		var buf bytes.Buffer
		if err := charts.WritePNG(&buf, p); err != nil {
			s.logger.Error("[dashboard] chart encode: %v", err)
			renderError(w, r, ErrInternalServer)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(buf.Bytes())
	}
}

var exportContentTypes = map[string]string{
	storage.FormatCSV:  "text/csv; charset=utf-8",
	storage.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// handleExport streams the filtered sold subset as a download.
func (s *Server) handleExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, apiErr := s.buildView(r)
		if apiErr != nil {
			renderError(w, r, apiErr)
			return
		}

		var buf bytes.Buffer
		lw, err := storage.NewWriter(format, &buf)
		if err != nil {
			renderError(w, r, ErrInternalServer)
			return
		}
		if err := lw.Write(v.sold.Listings); err != nil {
			s.logger.Error("[dashboard] export %s: %v", format, err)
			renderError(w, r, ErrInternalServer)
			return
		}
		if x, ok := lw.(*storage.XLSXWriter); ok {
			if err := x.WriteSummary(services.CalculateMarketStats(v.sold)); err != nil {
				s.logger.Error("[dashboard] export summary: %v", err)
			}
		}
		if err := lw.Close(); err != nil {
			s.logger.Error("[dashboard] export %s: %v", format, err)
			renderError(w, r, ErrInternalServer)
			return
		}

		name := fmt.Sprintf("%s-sold-%s.%s", v.primary.Dataset.Name, time.Now().Format("20060102"), format)
		w.Header().Set("Content-Type", exportContentTypes[format])
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = w.Write(buf.Bytes())
	}
}
