package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mls-insights/columns"
	"mls-insights/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTrendRendersPNG(t *testing.T) {
	p, err := Trend([]models.TrendPoint{
		{Month: "2024-01", MedianPrice: 450000, Sales: 3},
		{Month: "2024-02", MedianPrice: 462000, Sales: 4},
		{Month: "2024-03", MedianPrice: 471500, Sales: 2},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestScatterSkipsIncompleteListings(t *testing.T) {
	set := models.NewListingSet("s", columns.KeyColumns, []*models.Listing{
		{SellingPrice: models.Float(450000), FinishedSqft: models.Float(1500)},
		{SellingPrice: models.Float(470000)},
		{FinishedSqft: models.Float(1600)},
	})
	p, err := Scatter(set)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p))
	assert.NotZero(t, buf.Len())

	_, err = Scatter(models.NewListingSet("s", columns.KeyColumns, []*models.Listing{{FinishedSqft: models.Float(1)}}))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestYearOverYear(t *testing.T) {
	yc := &models.YearComparison{
		CurrentYear:   2024,
		PreviousYear:  2023,
		Current:       models.MarketStats{models.StatMedianPrice: 460000},
		Previous:      models.MarketStats{models.StatMedianPrice: 410000},
		CurrentSales:  3,
		PreviousSales: 2,
	}
	p, err := YearOverYear(yc)
	require.NoError(t, err)
	assert.Equal(t, "Median Price: 2023 vs 2024", p.Title.Text)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p))

	yc.Previous = models.MarketStats{}
	_, err = YearOverYear(yc)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = YearOverYear(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPeriods(t *testing.T) {
	p, err := Periods([]models.PeriodStats{
		{Label: "Last 3 Months", Sales: 2, Stats: models.MarketStats{models.StatMedianPrice: 600000}},
		{Label: "Last 6 Months", Sales: 3, Stats: models.MarketStats{models.StatMedianPrice: 560000}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestEmptyInputs(t *testing.T) {
	_, err := Trend(nil)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = Periods(nil)
	assert.ErrorIs(t, err, ErrNoData)
}
