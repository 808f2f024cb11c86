package chart

// Single-trace line chart over time, drawn with fogleman/gg.
// The drawing context is constructed per call; no shared figure state.

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	logging "actions-graph/internal/infra/log"
	"actions-graph/internal/timeseries"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	marginLeft   = 90.0
	marginRight  = 40.0
	marginTop    = 40.0
	marginBottom = 90.0

	axisLineWidth = 2.0
	gridLineWidth = 1.0
	traceWidth    = 2.0
	markerRadius  = 3.0

	tickLength  = 6.0
	labelGap    = 10.0
	maxYTicks   = 6
	numXTicks   = 5
	axisFontPts = 14.0
)

// Options controls the canvas and labels of a rendered chart.
type Options struct {
	Width  int
	Height int

	// AspectW:AspectH, when both positive, fixes the width:height ratio by
	// recomputing the height from the width.
	AspectW float64
	AspectH float64

	XLabel string
	YLabel string

	LineColor color.Color
}

// DefaultOptions matches the concurrency-chart defaults: an unconstrained
// canvas with the Date/Time vs. concurrent jobs labels.
func DefaultOptions() Options {
	return Options{
		Width:     1200,
		Height:    800,
		XLabel:    "Date/Time",
		YLabel:    "Concurrent GH action jobs",
		LineColor: color.RGBA{31, 119, 180, 255},
	}
}

// RenderLine draws the series in insertion order and writes a PNG to
// outPath, overwriting any existing file. Nothing is written on error.
func RenderLine(points []timeseries.Point, opts Options, outPath string) error {
	if len(points) == 0 {
		return fmt.Errorf("no points to plot")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", opts.Width, opts.Height)
	}
	if opts.LineColor == nil {
		opts.LineColor = DefaultOptions().LineColor
	}

	width := opts.Width
	height := opts.Height
	if opts.AspectW > 0 && opts.AspectH > 0 {
		height = int(math.Round(float64(width) * opts.AspectH / opts.AspectW))
		if height < 1 {
			height = 1
		}
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	loadFontFace(dc, axisFontPts)

	area := plotArea{
		left:   marginLeft,
		right:  float64(width) - marginRight,
		top:    marginTop,
		bottom: float64(height) - marginBottom,
	}

	xs := xScale(points)
	ys := yScale(points)

	drawGridAndTicks(dc, area, xs, ys)
	drawAxes(dc, area)
	drawLabels(dc, area, opts)
	drawTrace(dc, area, points, xs, ys, opts.LineColor)

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("failed to stat chart file: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(outPath)
		return fmt.Errorf("chart file is empty after rendering")
	}

	logging.LogInfo("chart rendered",
		zap.String("path", outPath),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("points", len(points)))

	return nil
}

type plotArea struct {
	left, right, top, bottom float64
}

func (a plotArea) width() float64  { return a.right - a.left }
func (a plotArea) height() float64 { return a.bottom - a.top }

// timeScale maps wall-clock time onto [0,1] across the plotted range.
type timeScale struct {
	min   time.Time
	span  time.Duration
	ticks []time.Time
}

func xScale(points []timeseries.Point) timeScale {
	min, max := points[0].T, points[0].T
	for _, p := range points[1:] {
		if p.T.Before(min) {
			min = p.T
		}
		if p.T.After(max) {
			max = p.T
		}
	}

	span := max.Sub(min)
	if span == 0 {
		// A single instant still needs a visible axis.
		span = time.Hour
		min = min.Add(-span / 2)
	}

	s := timeScale{min: min, span: span}
	for i := 0; i <= numXTicks; i++ {
		s.ticks = append(s.ticks, min.Add(time.Duration(float64(span)*float64(i)/float64(numXTicks))))
	}
	return s
}

func (s timeScale) pos(t time.Time) float64 {
	return float64(t.Sub(s.min)) / float64(s.span)
}

func (s timeScale) format(t time.Time) string {
	if s.span <= 48*time.Hour {
		return t.Format("01-02 15:04")
	}
	return t.Format("2006-01-02")
}

// valueScale maps values onto [0,1] with the axis extended to round steps.
type valueScale struct {
	min, max float64
	step     float64
}

func yScale(points []timeseries.Point) valueScale {
	min, max := points[0].V, points[0].V
	for _, p := range points[1:] {
		if p.V < min {
			min = p.V
		}
		if p.V > max {
			max = p.V
		}
	}
	if min == max {
		min--
		max++
	}

	step := niceStep(max-min, maxYTicks)
	min = math.Floor(min/step) * step
	max = math.Ceil(max/step) * step

	return valueScale{min: min, max: max, step: step}
}

func (s valueScale) pos(v float64) float64 {
	return (v - s.min) / (s.max - s.min)
}

// niceStep picks a 1/2/5 multiple of a power of ten so the axis gets at
// most maxTicks intervals.
func niceStep(span float64, maxTicks int) float64 {
	if span <= 0 {
		return 1
	}
	raw := span / float64(maxTicks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func drawAxes(dc *gg.Context, area plotArea) {
	dc.SetColor(color.Black)
	dc.SetLineWidth(axisLineWidth)
	dc.SetDash()
	dc.DrawLine(area.left, area.bottom, area.right, area.bottom)
	dc.Stroke()
	dc.DrawLine(area.left, area.top, area.left, area.bottom)
	dc.Stroke()
}

func drawGridAndTicks(dc *gg.Context, area plotArea, xs timeScale, ys valueScale) {
	grid := color.RGBA{210, 210, 210, 255}

	// Horizontal grid lines with y tick labels.
	for v := ys.min; v <= ys.max+ys.step/2; v += ys.step {
		y := area.bottom - ys.pos(v)*area.height()

		dc.SetColor(grid)
		dc.SetLineWidth(gridLineWidth)
		dc.SetDash(4, 4)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.SetLineWidth(axisLineWidth)
		dc.SetDash()
		dc.DrawLine(area.left-tickLength, y, area.left, y)
		dc.Stroke()

		label := formatTick(v, ys.step)
		w, h := dc.MeasureString(label)
		dc.DrawString(label, area.left-tickLength-labelGap-w, y+h/2)
	}

	// Vertical grid lines with time tick labels.
	for _, t := range xs.ticks {
		x := area.left + xs.pos(t)*area.width()

		dc.SetColor(grid)
		dc.SetLineWidth(gridLineWidth)
		dc.SetDash(4, 4)
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.SetLineWidth(axisLineWidth)
		dc.SetDash()
		dc.DrawLine(x, area.bottom, x, area.bottom+tickLength)
		dc.Stroke()

		label := xs.format(t)
		w, _ := dc.MeasureString(label)
		dc.DrawString(label, x-w/2, area.bottom+tickLength+labelGap+10)
	}
	dc.SetDash()
}

func drawLabels(dc *gg.Context, area plotArea, opts Options) {
	dc.SetColor(color.Black)

	if opts.XLabel != "" {
		w, _ := dc.MeasureString(opts.XLabel)
		x := area.left + (area.width()-w)/2
		y := area.bottom + marginBottom - labelGap
		dc.DrawString(opts.XLabel, x, y)
	}

	if opts.YLabel != "" {
		cx := labelGap + 10
		cy := area.top + area.height()/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), cx, cy)
		w, _ := dc.MeasureString(opts.YLabel)
		dc.DrawString(opts.YLabel, cx-w/2, cy)
		dc.Pop()
	}
}

func drawTrace(dc *gg.Context, area plotArea, points []timeseries.Point, xs timeScale, ys valueScale, lineColor color.Color) {
	dc.SetColor(lineColor)
	dc.SetLineWidth(traceWidth)
	dc.SetDash()

	// Segments follow row order, not time order.
	for i := 0; i < len(points)-1; i++ {
		x1 := area.left + xs.pos(points[i].T)*area.width()
		y1 := area.bottom - ys.pos(points[i].V)*area.height()
		x2 := area.left + xs.pos(points[i+1].T)*area.width()
		y2 := area.bottom - ys.pos(points[i+1].V)*area.height()
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for _, p := range points {
		x := area.left + xs.pos(p.T)*area.width()
		y := area.bottom - ys.pos(p.V)*area.height()
		dc.DrawCircle(x, y, markerRadius)
		dc.Fill()
	}
}

func formatTick(v, step float64) string {
	if step >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// loadFontFace tries a few common system fonts; gg falls back to its
// built-in face when none load.
func loadFontFace(dc *gg.Context, size float64) {
	fontPaths := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := dc.LoadFontFace(path, size); err == nil {
			return
		}
	}
	logging.LogDebug("no system font found, using built-in face")
}
