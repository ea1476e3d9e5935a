package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mls-insights/config"
	"mls-insights/services"
	"mls-insights/utils"
)

const header = "Listing Number\tStreet Number\tStreet Name\tStatus\tProperty Sub Type\tSelling Price\tFinished Sqft\tYear Built\tSelling Date\tDOM"

var primaryRows = []string{
	"1\t100\tMain St\tSold\tSingle Family\t$450,000\t1,500\t1995\t2024-03-15\t12",
	"2\t200\tOak Ave\tSold\tTownhouse\t$520,000\t1,580\t2001\t2024-05-20\t20",
	"3\t300\tElm Rd\tSold\tSingle Family\t$600,000\t1,800\t2005\t2023-11-02\t30",
	"4\t400\tPine Ln\tActive\tSingle Family\t$470,000\t1,550\t1998\t\t",
}

var contextRows = []string{
	"10\t10\tRidge Ct\tSold\tSingle Family\t$650,000\t1,600\t2010\t2024-04-01\t8",
}

func writeExport(t *testing.T, dir, name string, rows []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testConfig(datasets ...config.Dataset) *config.Config {
	return &config.Config{
		Datasets: datasets,
		Filters: config.FilterConfig{
			SoldStatus:   "Sold",
			MinSqft:      1100,
			MaxSqft:      1900,
			MaxYearBuilt: 2020,
			MinPrice:     50000,
			MaxPrice:     2000000,
		},
		Pricing: config.PricingConfig{
			SubjectSqft:    1576,
			RemodelPremium: 50000,
			CompPremiumPct: 5,
			PSFPremiumPct:  10,
			PSFBasis:       services.BasisMedian,
			BroadMonths:    18,
			ContextMonths:  24,
			BroadTopN:      5,
			BroadShowN:     3,
			ContextTopN:    3,
			SizeBandMin:    1500,
			SizeBandMax:    1600,
		},
		Proceeds: config.ProceedsConfig{
			ListingAgentPct: 2.5,
			SellingAgentPct: 2.5,
			TitleInsurance:  1300,
			EscrowFee:       1400,
			MortgagePayoff:  285000,
			TransferTax:     500,
			ExciseTax:       9000,
			MiscFees:        300,
		},
		Server:          config.ServerConfig{Addr: ":0", ShutdownTimeoutSec: 1},
		LoadConcurrency: 2,
	}
}

// newTestServer loads a primary and a context dataset from temp files.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(
		config.Dataset{Name: "primary", Label: "Sunrise Area", Path: writeExport(t, dir, "primary.txt", primaryRows), Role: config.RolePrimary},
		config.Dataset{Name: "ridge", Label: "Rebecca Ridge", Path: writeExport(t, dir, "ridge.txt", contextRows), Role: config.RoleContext},
	)
	return serverFor(t, cfg)
}

func serverFor(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := utils.NopLogger()
	reg := prometheus.NewRegistry()
	store := services.NewDatasetStore(cfg, logger, services.NewMetrics(reg))
	_ = store.LoadAll(context.Background())
	return New(cfg, store, logger, reg).Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["datasets_loaded"])
	assert.EqualValues(t, 0, body["sources_failing"])
}

func TestDatasets(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/datasets")
	require.Equal(t, http.StatusOK, rec.Code)

	datasets := decode(t, rec)["datasets"].([]interface{})
	require.Len(t, datasets, 2)
	primary := datasets[0].(map[string]interface{})
	assert.Equal(t, "Sunrise Area", primary["label"])
	assert.Equal(t, true, primary["loaded"])
	assert.EqualValues(t, 4, primary["total_records"])
	assert.EqualValues(t, 3, primary["sold_records"])
	assert.NotEmpty(t, primary["snapshot_id"])
	assert.EqualValues(t, 520000, primary["medians"].(map[string]interface{})["median_price"])
}

func TestStats(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["sales"])
	assert.EqualValues(t, 12, body["months"])
	assert.EqualValues(t, 520000, body["stats"].(map[string]interface{})["median_price"])

	rec = get(t, h, "/api/stats?min_price=500000")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.EqualValues(t, 2, body["sales"])
	assert.EqualValues(t, 560000, body["stats"].(map[string]interface{})["median_price"])

	rec = get(t, h, "/api/stats?type=Townhouse&dataset=primary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["sales"])

	rec = get(t, h, "/api/stats?dataset=ridge")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "ridge", body["dataset"])
	assert.EqualValues(t, 1, body["sales"])
}

func TestInvalidParameters(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"bad date", "/api/stats?from=2024-13-01", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"reversed dates", "/api/stats?from=2024-05-01&to=2024-01-01", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"bad price", "/api/trend?min_price=cheap", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"reversed prices", "/api/trend?min_price=500000&max_price=100", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"bad months", "/api/stats?months=soon", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"unknown dataset", "/api/stats?dataset=nowhere", http.StatusNotFound, "NOT_FOUND"},
		{"unknown scope", "/api/top-sales?scope=everything", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"n out of range", "/api/top-sales?n=0", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"unknown kind", "/api/columns?kind=colour", http.StatusBadRequest, "INVALID_PARAMETER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec)["error_code"])
		})
	}
}

func TestTrend(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/trend")
	require.Equal(t, http.StatusOK, rec.Code)

	points := decode(t, rec)["points"].([]interface{})
	require.Len(t, points, 3)
	assert.Equal(t, "2023-11", points[0].(map[string]interface{})["month"])
	assert.Equal(t, "2024-05", points[2].(map[string]interface{})["month"])
}

func TestPricing(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/pricing")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	analysis := body["analysis"].(map[string]interface{})
	assert.InDelta(t, 570551, analysis["recommended_price"], 1)
	assert.InDelta(t, 570000, analysis["conservative_price"], 0.01)
	assert.InDelta(t, 630000, analysis["aggressive_price"], 0.01)
	assert.EqualValues(t, 650000, analysis["context_median_price"])
	assert.Len(t, analysis["methods"], 3)
	assert.Equal(t, "Fast", body["market_speed"].(map[string]interface{})["label"])
}

func TestTopSalesScopes(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		scope string
		count int
		first float64
	}{
		{"", 3, 600000},
		{"primary", 3, 600000},
		{"size", 2, 520000},
		{"context", 1, 650000},
	}
	for _, tt := range tests {
		t.Run("scope="+tt.scope, func(t *testing.T) {
			rec := get(t, h, "/api/top-sales?scope="+tt.scope)
			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.EqualValues(t, tt.count, body["count"])
			first := body["listings"].([]interface{})[0].(map[string]interface{})
			assert.EqualValues(t, tt.first, first["selling_price"])
		})
	}
}

func TestColumns(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/columns?kind=price")
	require.Equal(t, http.StatusOK, rec.Code)

	cols := decode(t, rec)["columns"].([]interface{})
	require.NotEmpty(t, cols)
	for _, c := range cols {
		assert.Equal(t, "price", c.(map[string]interface{})["kind"])
	}
}

func TestProceeds(t *testing.T) {
	h := newTestServer(t)
	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/proceeds", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"sale_price": 600000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	breakdown := decode(t, rec)["breakdown"].(map[string]interface{})
	assert.Equal(t, "30000", breakdown["commission"])
	assert.Equal(t, "12500", breakdown["closing_costs"])
	assert.Equal(t, "272500", breakdown["net_proceeds"])

	rec = post(`{"sale_price": 600000, "mortgage_payoff": 0, "listing_agent_pct": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	breakdown = decode(t, rec)["breakdown"].(map[string]interface{})
	assert.Equal(t, "33000", breakdown["commission"])
	assert.Equal(t, "554500", breakdown["net_proceeds"])

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing price", `{}`, "VALIDATION_FAILED"},
		{"negative price", `{"sale_price": -5}`, "VALIDATION_FAILED"},
		{"commission over 100", `{"sale_price": 1, "listing_agent_pct": 150}`, "VALIDATION_FAILED"},
		{"negative fee", `{"sale_price": 1, "escrow_fee": -1}`, "VALIDATION_FAILED"},
		{"malformed", `{"sale_price":`, "INVALID_JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec)["error_code"])
		})
	}
}

func TestCharts(t *testing.T) {
	h := newTestServer(t)

	for _, name := range []string{"trend", "scatter", "yoy", "periods"} {
		t.Run(name, func(t *testing.T) {
			rec := get(t, h, "/charts/"+name+".png")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
		})
	}

	rec := get(t, h, "/charts/trend.png?min_price=5000000")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportCSV(t *testing.T) {
	rec := get(t, newTestServer(t), "/export/sold.csv?type=Townhouse")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "primary-sold-")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Listing Number", records[0][0])
	assert.Equal(t, "2", records[1][0])
}

func TestExportXLSX(t *testing.T) {
	rec := get(t, newTestServer(t), "/export/sold.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestPage(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		target string
		want   []string
	}{
		{"/", []string{"Neighborhood Market Analysis: Sunrise Area", "Executive Summary", "Market Snapshot", "Townhouse"}},
		{"/?tab=analysis", []string{"/charts/trend.png", "Monthly Trend", "2024-05"}},
		{"/?tab=analysis&type=Townhouse", []string{"/charts/trend.png?type=Townhouse"}},
		{"/?tab=pricing", []string{"Recommended List Price", "$570,551", "1,500 to 1,600 sqft", "Rebecca Ridge"}},
		{"/?tab=proceeds&sale_price=600000", []string{"Seller Net Proceeds", "$272,500"}},
		{"/?tab=proceeds&sale_price=abc", []string{"is not a number"}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}

	rec := get(t, h, "/?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "from: expected a date")

	rec = get(t, h, "/?min_price=5000000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No sales in the last 12 months match")
}

func TestNoData(t *testing.T) {
	cfg := testConfig(config.Dataset{Name: "gone", Path: filepath.Join(t.TempDir(), "missing.txt"), Role: config.RolePrimary})
	h := serverFor(t, cfg)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No dataset is loaded")

	rec = get(t, h, "/api/stats")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NO_DATA", decode(t, rec)["error_code"])

	rec = get(t, h, "/api/pricing")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, h, "/health")
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.EqualValues(t, 1, body["sources_failing"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusOK, get(t, h, "/api/stats").Code)

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mls_http_requests_total{code="200",method="GET",route="/api/stats"} 1`)
	assert.Contains(t, body, "mls_dataset_reloads_total")
}
