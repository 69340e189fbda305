// Package render draws a frequency response as a two-panel chart: gain on
// top, phase below, both over the same frequency axis.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RMahshie/filterscope/pkg/models"
)

// Fixed display range of the gain panel. Samples outside it are clipped
// when drawn; the response itself is left untouched.
const (
	GainMinDB = -75.0
	GainMaxDB = 5.0
)

// Default panel size in pixels
const (
	DefaultWidth  = 900
	DefaultHeight = 320
)

const (
	gainSeriesName  = "Gain (dB)"
	phaseSeriesName = "Phase (rad)"
	frequencyTitle  = "Frequency ω (rad/sample)"
)

// ErrTooFewSamples is returned when there is nothing to draw a line through
var ErrTooFewSamples = errors.New("render: need at least two samples")

// ErrNonFiniteSample is returned for a response containing NaN or infinite
// values, which the chart layout cannot place
var ErrNonFiniteSample = errors.New("render: response contains a non-finite sample")

// Renderer builds charts of a fixed panel size
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer. Non-positive sizes fall back to the
// defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Chart is a rendered-on-demand pair of stacked panels
type Chart struct {
	Gain  chart.Chart
	Phase chart.Chart
}

// Render lays out the gain and phase panels for resp
func (r *Renderer) Render(resp models.FrequencyResponse) (*Chart, error) {
	if len(resp) < 2 {
		return nil, ErrTooFewSamples
	}
	for i, s := range resp {
		if !finite(s.Frequency) || !finite(s.Gain) || !finite(s.Phase) {
			return nil, fmt.Errorf("%w at index %d", ErrNonFiniteSample, i)
		}
	}

	freqs := resp.Frequencies()
	xAxis := chart.XAxis{
		Range: &chart.ContinuousRange{Min: 0, Max: math.Pi},
		Ticks: piTicks(0, math.Pi),
	}

	gain := chart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 8}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  gainSeriesName,
			Range: &chart.ContinuousRange{Min: GainMinDB, Max: GainMaxDB},
			Ticks: gainTicks(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    gainSeriesName,
				XValues: freqs,
				YValues: clip(resp.Gains(), GainMinDB, GainMaxDB),
				Style:   lineStyle(chart.ColorBlue),
			},
		},
	}
	gain.Elements = []chart.Renderable{chart.Legend(&gain)}

	bottomAxis := xAxis
	bottomAxis.Name = frequencyTitle
	phase := chart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 8, Left: 16, Right: 12, Bottom: 20}},
		XAxis:      bottomAxis,
		YAxis: chart.YAxis{
			Name:  phaseSeriesName,
			Range: &chart.ContinuousRange{Min: -math.Pi, Max: math.Pi},
			Ticks: piTicks(-math.Pi, math.Pi),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    phaseSeriesName,
				XValues: freqs,
				YValues: resp.Phases(),
				Style:   lineStyle(chart.ColorRed),
			},
		},
	}
	phase.Elements = []chart.Renderable{chart.Legend(&phase)}

	return &Chart{Gain: gain, Phase: phase}, nil
}

// SVG renders each panel as a standalone SVG document
func (c *Chart) SVG() (gainSVG, phaseSVG string, err error) {
	var gb, pb bytes.Buffer
	if err := c.Gain.Render(chart.SVG, &gb); err != nil {
		return "", "", fmt.Errorf("render gain panel: %w", err)
	}
	if err := c.Phase.Render(chart.SVG, &pb); err != nil {
		return "", "", fmt.Errorf("render phase panel: %w", err)
	}
	return gb.String(), pb.String(), nil
}

// PNG writes both panels stacked into a single image
func (c *Chart) PNG(w io.Writer) error {
	top, err := rasterize(c.Gain)
	if err != nil {
		return fmt.Errorf("render gain panel: %w", err)
	}
	bottom, err := rasterize(c.Phase)
	if err != nil {
		return fmt.Errorf("render phase panel: %w", err)
	}

	tb, bb := top.Bounds(), bottom.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, max(tb.Dx(), bb.Dx()), tb.Dy()+bb.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, tb.Dx(), tb.Dy()), top, tb.Min, draw.Over)
	draw.Draw(out, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottom, bb.Min, draw.Over)

	return png.Encode(w, out)
}

func rasterize(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

// clip bounds values for drawing. The input slice is not modified.
func clip(values []float64, lo, hi float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Min(math.Max(v, lo), hi)
	}
	return out
}

func gainTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 7)
	for v := GainMinDB; v <= 0; v += 15 {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return append(ticks, chart.Tick{Value: GainMaxDB, Label: fmt.Sprintf("%.0f", GainMaxDB)})
}

// piTicks labels multiples of pi/2 between lo and hi
func piTicks(lo, hi float64) []chart.Tick {
	labels := map[int]string{-2: "-π", -1: "-π/2", 0: "0", 1: "π/2", 2: "π"}
	var ticks []chart.Tick
	for k := -2; k <= 2; k++ {
		v := float64(k) * math.Pi / 2
		if v < lo-1e-12 || v > hi+1e-12 {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: labels[k]})
	}
	return ticks
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
