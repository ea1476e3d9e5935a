// Package charts draws the dashboard's PNG charts with gonum/plot.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mls-insights/models"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Default PNG size.
const (
	Width  = 9 * vg.Inch
	Height = 4.5 * vg.Inch
)

var (
	priceColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	prevColor  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	pointColor = color.RGBA{R: 214, G: 39, B: 40, A: 200}
)

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

// thousands expresses dollars in $K for axis readability.
func thousands(v float64) float64 { return v / 1000 }

// Trend plots the monthly median selling price.
func Trend(points []models.TrendPoint) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	p := newPlot("Median Sale Price by Month", "Month", "Median price ($K)")

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i].X = float64(i)
		xys[i].Y = thousands(pt.MedianPrice)
		labels[i] = pt.Month
	}

	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("trend line: %w", err)
	}
	line.Color = priceColor
	line.Width = vg.Points(2)
	marks.Color = priceColor
	marks.Shape = draw.CircleGlyph{}

	p.Add(plotter.NewGrid(), line, marks)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// Scatter plots selling price against finished square footage.
func Scatter(set *models.ListingSet) (*plot.Plot, error) {
	var xys plotter.XYs
	for _, l := range set.Listings {
		sqft, okSqft := models.Value(l.FinishedSqft)
		price, okPrice := models.Value(l.SellingPrice)
		if okSqft && okPrice {
			xys = append(xys, plotter.XY{X: sqft, Y: thousands(price)})
		}
	}
	if len(xys) == 0 {
		return nil, ErrNoData
	}
	p := newPlot("Price vs Size", "Finished sqft", "Selling price ($K)")

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Color = pointColor
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(plotter.NewGrid(), s)
	return p, nil
}

// YearOverYear compares the median price of the two latest sale years.
func YearOverYear(yc *models.YearComparison) (*plot.Plot, error) {
	if yc == nil {
		return nil, ErrNoData
	}
	prev, okPrev := yc.Previous.Get(models.StatMedianPrice)
	cur, okCur := yc.Current.Get(models.StatMedianPrice)
	if !okPrev || !okCur {
		return nil, ErrNoData
	}
	p := newPlot(fmt.Sprintf("Median Price: %d vs %d", yc.PreviousYear, yc.CurrentYear), "", "Median price ($K)")

	w := vg.Points(40)
	prevBar, err := plotter.NewBarChart(plotter.Values{thousands(prev), 0}, w)
	if err != nil {
		return nil, fmt.Errorf("yoy bars: %w", err)
	}
	prevBar.Color = prevColor
	prevBar.LineStyle.Width = vg.Length(0)

	curBar, err := plotter.NewBarChart(plotter.Values{0, thousands(cur)}, w)
	if err != nil {
		return nil, fmt.Errorf("yoy bars: %w", err)
	}
	curBar.Color = priceColor
	curBar.LineStyle.Width = vg.Length(0)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{{X: 0, Y: thousands(prev)}, {X: 1, Y: thousands(cur)}},
		Labels: []string{
			fmt.Sprintf("$%.0fK (%d sales)", thousands(prev), yc.PreviousSales),
			fmt.Sprintf("$%.0fK (%d sales)", thousands(cur), yc.CurrentSales),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("yoy labels: %w", err)
	}

	p.Add(prevBar, curBar, labels)
	p.NominalX(fmt.Sprint(yc.PreviousYear), fmt.Sprint(yc.CurrentYear))
	p.Y.Min = 0
	p.Y.Max = math.Max(thousands(prev), thousands(cur)) * 1.15
	return p, nil
}

// Periods compares the median price of each trailing window.
func Periods(periods []models.PeriodStats) (*plot.Plot, error) {
	values := make(plotter.Values, 0, len(periods))
	labels := make([]string, 0, len(periods))
	for _, ps := range periods {
		if v, ok := ps.Stats.Get(models.StatMedianPrice); ok {
			values = append(values, thousands(v))
			labels = append(labels, fmt.Sprintf("%s (%d)", ps.Label, ps.Sales))
		}
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	p := newPlot("Median Price by Trailing Window", "", "Median price ($K)")

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("period bars: %w", err)
	}
	bars.Color = priceColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)
	p.Y.Min = 0
	return p, nil
}

// WritePNG renders p as a PNG of the default size.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
