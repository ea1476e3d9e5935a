package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"mls-insights/columns"
	"mls-insights/models"
	"mls-insights/services"
)

// DatasetResponse describes one configured dataset.
type DatasetResponse struct {
	Name         string                 `json:"name"`
	Label        string                 `json:"label"`
	Role         string                 `json:"role"`
	Path         string                 `json:"path"`
	Loaded       bool                   `json:"loaded"`
	SnapshotID   string                 `json:"snapshot_id,omitempty"`
	LoadedAt     *time.Time             `json:"loaded_at,omitempty"`
	TotalRecords int                    `json:"total_records"`
	SoldRecords  int                    `json:"sold_records"`
	Steps        []services.FilterStep  `json:"steps,omitempty"`
	Medians      map[string]interface{} `json:"medians,omitempty"`
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	out := make([]DatasetResponse, 0, len(s.store.Datasets()))
	for _, d := range s.store.Datasets() {
		entry := DatasetResponse{Name: d.Name, Label: d.DisplayName(), Role: d.Role, Path: d.Path}
		if snap, err := s.store.Get(d.Name); err == nil {
			loadedAt := snap.LoadedAt
			entry.Loaded = true
			entry.SnapshotID = snap.ID
			entry.LoadedAt = &loadedAt
			entry.TotalRecords = snap.Data.All.Len()
			entry.SoldRecords = snap.Data.Sold.Len()
			entry.Steps = snap.Data.Steps
			entry.Medians = headlineMedians(services.CalculateMarketStats(services.RecentMarketData(snap.Data.Sold, 12)))
		}
		out = append(out, entry)
	}
	render.JSON(w, r, map[string]interface{}{"datasets": out})
}

// headlineMedians picks the sidebar figures from a stats snapshot.
func headlineMedians(stats models.MarketStats) map[string]interface{} {
	out := make(map[string]interface{})
	for _, key := range []string{models.StatMedianPrice, models.StatMedianPricePerSqft, models.StatMedianDOM, models.StatTotalSales} {
		if v, ok := stats.Get(key); ok {
			out[key] = v
		}
	}
	return out
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	v, apiErr := s.buildView(r)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	months, apiErr := intParam(r.URL.Query(), "months", 12, 0, 600)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	subset := services.RecentMarketData(v.sold, months)
	render.JSON(w, r, map[string]interface{}{
		"dataset": v.primary.Dataset.Name,
		"months":  months,
		"filter":  v.filter,
		"sales":   subset.Len(),
		"stats":   services.CalculateMarketStats(subset),
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	v, apiErr := s.buildView(r)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	points := s.insights.MonthlyTrend(v.sold)
	if points == nil {
		points = []models.TrendPoint{}
	}
	render.JSON(w, r, map[string]interface{}{
		"dataset": v.primary.Dataset.Name,
		"points":  points,
	})
}

// pricingAnalysis prices the configured subject home against the unfiltered
// primary and context sold sets.
func (s *Server) pricingAnalysis() (*models.PricingAnalysis, *APIError) {
	primary, apiErr := s.primary()
	if apiErr != nil {
		return nil, apiErr
	}
	var neighborhood *models.ListingSet
	if snap := s.contextSnapshot(); snap != nil {
		neighborhood = snap.Data.Sold
	}
	analysis, ok := s.pricing.Analyze(primary.Data.Sold, neighborhood, services.PricingParamsFromConfig(s.cfg.Pricing))
	if !ok {
		return nil, ErrNoRecentSales
	}
	return analysis, nil
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	analysis, apiErr := s.pricingAnalysis()
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	resp := map[string]interface{}{"analysis": analysis}
	if analysis.BroadMedianDOM != nil {
		resp["market_speed"] = services.MarketSpeedFor(*analysis.BroadMedianDOM)
	}
	render.JSON(w, r, resp)
}

// Top-sales scopes.
const (
	scopePrimary = "primary"
	scopeContext = "context"
	scopeSize    = "size"
)

func (s *Server) handleTopSales(w http.ResponseWriter, r *http.Request) {
	v, apiErr := s.buildView(r)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	q := r.URL.Query()
	n, apiErr := intParam(q, "n", 5, 1, 50)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	scope := q.Get("scope")
	if scope == "" {
		scope = scopePrimary
	}
	set, apiErr := s.topSalesSet(v, scope)
	if apiErr != nil {
		renderError(w, r, apiErr)
		return
	}
	top := services.TopSales(set, n)
	render.JSON(w, r, map[string]interface{}{
		"scope":    scope,
		"count":    len(top),
		"listings": top,
	})
}

func (s *Server) topSalesSet(v *view, scope string) (*models.ListingSet, *APIError) {
	switch scope {
	case scopePrimary:
		return v.sold, nil
	case scopeSize:
		return s.insights.SizeBand(v.sold, s.cfg.Pricing.SizeBandMin, s.cfg.Pricing.SizeBandMax), nil
	case scopeContext:
		if v.context == nil {
			return nil, NotFoundError("context dataset")
		}
		return v.context.Data.Sold, nil
	default:
		return nil, InvalidParameter("scope", "expected one of primary, context, size")
	}
}

var columnKinds = map[columns.Kind]bool{
	columns.KindPrice:       true,
	columns.KindDate:        true,
	columns.KindNumeric:     true,
	columns.KindCategorical: true,
	columns.KindText:        true,
	columns.KindOther:       true,
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	kind := columns.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !columnKinds[kind] {
		renderError(w, r, InvalidParameter("kind", "unknown column kind"))
		return
	}
	render.JSON(w, r, map[string]interface{}{"columns": columns.Entries(kind)})
}

// ProceedsRequest is the body of POST /api/proceeds. Omitted fields take the
// configured defaults.
type ProceedsRequest struct {
	SalePrice        *float64 `json:"sale_price" validate:"required,gt=0"`
	ListingAgentPct  *float64 `json:"listing_agent_pct" validate:"omitempty,gte=0,lte=100"`
	SellingAgentPct  *float64 `json:"selling_agent_pct" validate:"omitempty,gte=0,lte=100"`
	TitleInsurance   *float64 `json:"title_insurance" validate:"omitempty,gte=0"`
	EscrowFee        *float64 `json:"escrow_fee" validate:"omitempty,gte=0"`
	MortgagePayoff   *float64 `json:"mortgage_payoff" validate:"omitempty,gte=0"`
	TransferTax      *float64 `json:"transfer_tax" validate:"omitempty,gte=0"`
	ExciseTax        *float64 `json:"excise_tax" validate:"omitempty,gte=0"`
	MiscFees         *float64 `json:"misc_fees" validate:"omitempty,gte=0"`
	BuyerConcessions *float64 `json:"buyer_concessions" validate:"omitempty,gte=0"`
}

// Input merges the request over the configured defaults.
func (p ProceedsRequest) Input(defaults models.ProceedsInput) models.ProceedsInput {
	in := defaults
	in.SalePrice = decimal.NewFromFloat(*p.SalePrice)
	set := func(dst *decimal.Decimal, src *float64) {
		if src != nil {
			*dst = decimal.NewFromFloat(*src)
		}
	}
	set(&in.ListingAgentPct, p.ListingAgentPct)
	set(&in.SellingAgentPct, p.SellingAgentPct)
	set(&in.TitleInsurance, p.TitleInsurance)
	set(&in.EscrowFee, p.EscrowFee)
	set(&in.MortgagePayoff, p.MortgagePayoff)
	set(&in.TransferTax, p.TransferTax)
	set(&in.ExciseTax, p.ExciseTax)
	set(&in.MiscFees, p.MiscFees)
	set(&in.BuyerConcessions, p.BuyerConcessions)
	return in
}

func (s *Server) handleProceeds(w http.ResponseWriter, r *http.Request) {
	var req ProceedsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, NewAPIError(http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err))
		return
	}

	in := req.Input(services.DefaultProceedsInput(s.cfg.Proceeds, *req.SalePrice))
	breakdown, err := services.CalculateProceeds(in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProceeds) {
			renderError(w, r, NewAPIError(http.StatusUnprocessableEntity, "INVALID_PROCEEDS", err.Error()))
			return
		}
		renderError(w, r, ErrInternalServer)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"input":     in,
		"breakdown": breakdown,
	})
}

func validationError(err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidRequest
	}
	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	return ValidationFailed(fields)
}
