package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"mls-insights/models"
	"mls-insights/services"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"dollars": services.Dollars,
	"count":   services.Count,
	"whole":   func(v int64) string { return services.Dollars(float64(v)) },
	"dollarsp": func(p *float64) string {
		if p == nil {
			return "n/a"
		}
		return services.Dollars(*p)
	},
	"ago": humanize.Time,
	"stat": func(stats models.MarketStats, key string) string {
		v, ok := stats.Get(key)
		if !ok {
			return "n/a"
		}
		switch key {
		case models.StatMedianDOM, models.StatMeanDOM:
			return fmt.Sprintf("%.0f days", v)
		case models.StatTotalSales:
			return services.Count(int(v))
		case models.StatMedianSqft, models.StatMeanSqft, models.StatMedianLotSize:
			return humanize.Comma(int64(v)) + " sqft"
		case models.StatAvgBedrooms, models.StatAvgBathrooms:
			return fmt.Sprintf("%.1f", v)
		}
		return services.Dollars(v)
	},
	"pct": func(v float64) string { return fmt.Sprintf("%+.1f%%", v) },
	"pctp": func(p *float64) string {
		if p == nil {
			return "n/a"
		}
		return fmt.Sprintf("%+.1f%%", *p)
	},
	"opt": func(p *float64) string {
		if p == nil {
			return "n/a"
		}
		return humanize.Comma(int64(*p))
	},
	"money": func(d decimal.Decimal) string { return services.Dollars(d.InexactFloat64()) },
	"share": func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "n/a"
		}
		return t.Format("Jan 2, 2006")
	},
	"price": func(l *models.Listing) string {
		if l.SellingPrice == nil {
			return "n/a"
		}
		return services.Dollars(*l.SellingPrice)
	},
	"address": func(l *models.Listing) string {
		if l.FullAddress == "" {
			return "Unknown address"
		}
		return l.FullAddress
	},
}).ParseFS(templateFS, "templates/dashboard.html"))

// Dashboard tabs.
const (
	tabSummary  = "summary"
	tabAnalysis = "analysis"
	tabPricing  = "pricing"
	tabProceeds = "proceeds"
)

var tabs = []tabLink{
	{Key: tabSummary, Title: "Executive Summary"},
	{Key: tabAnalysis, Title: "Market Analysis"},
	{Key: tabPricing, Title: "Price Recommendation"},
	{Key: tabProceeds, Title: "Net Proceeds"},
}

type tabLink struct {
	Key    string
	Title  string
	Href   string
	Active bool
}

type datasetCard struct {
	Label    string
	Role     string
	Loaded   bool
	LoadedAt time.Time
	Sales    int
	Medians  models.MarketStats
}

type typeOption struct {
	Name    string
	Checked bool
}

type chartLink struct {
	Title string
	Src   string
}

type topSalesGroup struct {
	Title    string
	Listings []*models.Listing
}

type filterForm struct {
	From     string
	To       string
	MinPrice string
	MaxPrice string
}

type pageData struct {
	Tab      string
	Tabs     []tabLink
	Datasets []datasetCard
	Message  string
	NoData   bool

	Dataset string
	Filter  filterForm
	Types   []typeOption
	Query   string
	Sales   int

	Stats     models.MarketStats
	Velocity  *models.Velocity
	Speed     *models.MarketSpeed
	YoY       *models.YearComparison
	Strategic *models.StrategicInsights

	Trend   []models.TrendPoint
	Periods []models.PeriodStats
	Charts  []chartLink

	Pricing  *models.PricingAnalysis
	TopSales []topSalesGroup

	ProceedsForm  url.Values
	Proceeds      *models.ProceedsBreakdown
	ProceedsError string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := q.Get("tab")
	if !validTab(tab) {
		tab = tabSummary
	}
	data := &pageData{Tab: tab, Datasets: s.datasetCards()}
	filterQuery := filterValues(q)
	data.Query = filterQuery.Encode()
	data.Tabs = make([]tabLink, len(tabs))
	for i, t := range tabs {
		link := url.Values{}
		for k, vs := range filterQuery {
			link[k] = vs
		}
		link.Set("tab", t.Key)
		data.Tabs[i] = tabLink{Key: t.Key, Title: t.Title, Href: "/?" + link.Encode(), Active: t.Key == tab}
	}

	v, apiErr := s.buildView(r)
	switch {
	case apiErr == ErrServiceUnavailable:
		data.NoData = true
		data.Message = "No dataset is loaded. Check the configured export paths."
		s.writePage(w, http.StatusOK, data)
		return
	case apiErr != nil:
		data.Message = apiErr.Message
		if d, ok := apiErr.Details.(ValidationError); ok {
			data.Message = fmt.Sprintf("%s: %s", d.Field, d.Message)
		}
		s.writePage(w, apiErr.StatusCode, data)
		return
	}

	data.Dataset = v.primary.Dataset.DisplayName()
	data.Filter = filterForm{
		From:     q.Get("from"),
		To:       q.Get("to"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
	}
	selected := make(map[string]bool, len(v.filter.Types))
	for _, t := range v.filter.Types {
		selected[t] = true
	}
	for _, t := range s.insights.PropertyTypes(v.primary.Data.Sold) {
		data.Types = append(data.Types, typeOption{Name: t, Checked: selected[t]})
	}
	data.Sales = v.sold.Len()

	switch tab {
	case tabSummary:
		s.fillSummary(data, v)
	case tabAnalysis:
		s.fillAnalysis(data, v)
	case tabPricing:
		s.fillPricing(data, v)
	case tabProceeds:
		s.fillProceeds(data, q)
	}
	s.writePage(w, http.StatusOK, data)
}

func (s *Server) writePage(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("[dashboard] render page: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func validTab(tab string) bool {
	for _, t := range tabs {
		if t.Key == tab {
			return true
		}
	}
	return false
}

// filterValues keeps only the query keys that select and filter data.
func filterValues(q url.Values) url.Values {
	out := url.Values{}
	for _, k := range []string{"dataset", "from", "to", "type", "min_price", "max_price"} {
		for _, v := range q[k] {
			if v != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}

func (s *Server) datasetCards() []datasetCard {
	cards := make([]datasetCard, 0, len(s.store.Datasets()))
	for _, d := range s.store.Datasets() {
		card := datasetCard{Label: d.DisplayName(), Role: d.Role}
		if snap, err := s.store.Get(d.Name); err == nil {
			recent := services.RecentMarketData(snap.Data.Sold, 12)
			card.Loaded = true
			card.LoadedAt = snap.LoadedAt
			card.Sales = recent.Len()
			card.Medians = services.CalculateMarketStats(recent)
		}
		cards = append(cards, card)
	}
	return cards
}

func (s *Server) fillSummary(data *pageData, v *view) {
	if v.sold.Len() == 0 {
		return
	}
	recent := services.RecentMarketData(v.sold, 12)
	data.Stats = services.CalculateMarketStats(recent)
	data.Velocity = s.insights.MarketVelocity(v.sold)
	if data.Velocity != nil {
		speed := services.MarketSpeedFor(data.Velocity.MedianDOM)
		data.Speed = &speed
	}
	data.YoY = s.insights.YearOverYear(v.sold)
	data.Strategic = s.insights.StrategicInsights(v.sold)
}

func (s *Server) fillAnalysis(data *pageData, v *view) {
	if v.sold.Len() == 0 {
		return
	}
	data.Trend = s.insights.MonthlyTrend(v.sold)
	data.Periods = s.insights.PeriodComparison(v.sold, services.DefaultPeriods)
	suffix := ""
	if data.Query != "" {
		suffix = "?" + data.Query
	}
	data.Charts = []chartLink{
		{Title: "Monthly Median Sale Price", Src: "/charts/trend.png" + suffix},
		{Title: "Price vs. Finished Square Feet", Src: "/charts/scatter.png" + suffix},
		{Title: "Year over Year", Src: "/charts/yoy.png" + suffix},
		{Title: "Trailing Periods", Src: "/charts/periods.png" + suffix},
	}
}

func (s *Server) fillPricing(data *pageData, v *view) {
	if analysis, apiErr := s.pricingAnalysis(); apiErr == nil {
		data.Pricing = analysis
	}
	const n = 5
	pc := s.cfg.Pricing
	data.TopSales = append(data.TopSales, topSalesGroup{
		Title:    fmt.Sprintf("%s to %s sqft", humanize.Comma(int64(pc.SizeBandMin)), humanize.Comma(int64(pc.SizeBandMax))),
		Listings: services.TopSales(s.insights.SizeBand(v.sold, pc.SizeBandMin, pc.SizeBandMax), n),
	})
	if v.context != nil {
		data.TopSales = append(data.TopSales, topSalesGroup{
			Title:    v.context.Dataset.DisplayName(),
			Listings: services.TopSales(v.context.Data.Sold, n),
		})
	}
	data.TopSales = append(data.TopSales, topSalesGroup{
		Title:    v.primary.Dataset.DisplayName(),
		Listings: services.TopSales(v.sold, n),
	})
}

// proceedsFields are the calculator inputs accepted on the page query.
var proceedsFields = []string{
	"sale_price", "listing_agent_pct", "selling_agent_pct", "title_insurance",
	"escrow_fee", "mortgage_payoff", "transfer_tax", "excise_tax", "misc_fees",
	"buyer_concessions",
}

func (s *Server) fillProceeds(data *pageData, q url.Values) {
	salePrice := 0.0
	if analysis, apiErr := s.pricingAnalysis(); apiErr == nil {
		salePrice = float64(analysis.RecommendedPrice)
	}
	defaults := services.DefaultProceedsInput(s.cfg.Proceeds, salePrice)
	form := url.Values{}
	for _, f := range proceedsFields {
		form.Set(f, proceedsDefault(defaults, f))
	}

	req, err := proceedsFromQuery(q)
	if err != nil {
		data.ProceedsError = err.Error()
	} else {
		for _, f := range proceedsFields {
			if raw := strings.TrimSpace(q.Get(f)); raw != "" {
				form.Set(f, raw)
			}
		}
		if req.SalePrice == nil && salePrice > 0 {
			req.SalePrice = &salePrice
		}
		if req.SalePrice == nil {
			data.ProceedsError = "Enter a sale price to estimate net proceeds."
		} else if verr := s.validate.Struct(req); verr != nil {
			data.ProceedsError = "Sale price must be positive and percentages must be between 0 and 100."
		} else if b, cerr := services.CalculateProceeds(req.Input(defaults)); cerr != nil {
			data.ProceedsError = cerr.Error()
		} else {
			data.Proceeds = b
		}
	}
	data.ProceedsForm = form
}

func proceedsDefault(in models.ProceedsInput, field string) string {
	var d decimal.Decimal
	switch field {
	case "sale_price":
		d = in.SalePrice
	case "listing_agent_pct":
		d = in.ListingAgentPct
	case "selling_agent_pct":
		d = in.SellingAgentPct
	case "title_insurance":
		d = in.TitleInsurance
	case "escrow_fee":
		d = in.EscrowFee
	case "mortgage_payoff":
		d = in.MortgagePayoff
	case "transfer_tax":
		d = in.TransferTax
	case "excise_tax":
		d = in.ExciseTax
	case "misc_fees":
		d = in.MiscFees
	case "buyer_concessions":
		d = in.BuyerConcessions
	}
	return d.String()
}

func proceedsFromQuery(q url.Values) (ProceedsRequest, error) {
	var req ProceedsRequest
	targets := map[string]**float64{
		"sale_price":        &req.SalePrice,
		"listing_agent_pct": &req.ListingAgentPct,
		"selling_agent_pct": &req.SellingAgentPct,
		"title_insurance":   &req.TitleInsurance,
		"escrow_fee":        &req.EscrowFee,
		"mortgage_payoff":   &req.MortgagePayoff,
		"transfer_tax":      &req.TransferTax,
		"excise_tax":        &req.ExciseTax,
		"misc_fees":         &req.MiscFees,
		"buyer_concessions": &req.BuyerConcessions,
	}
	for _, f := range proceedsFields {
		raw := strings.TrimSpace(strings.ReplaceAll(q.Get(f), ",", ""))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%s: %q is not a number", f, q.Get(f))
		}
		*targets[f] = &v
	}
	return req, nil
}
