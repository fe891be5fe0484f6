package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PNGRenderer writes each figure to <Dir>/<seq>-<name>.png.
type PNGRenderer struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

// NewPNGRenderer creates dir if needed. Sizes are in inches.
func NewPNGRenderer(dir string, widthIn, heightIn float64) (*PNGRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &PNGRenderer{
		Dir:    dir,
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
	}, nil
}

func (r *PNGRenderer) Render(seq int, fig Figure) (string, error) {
	if len(fig.Charts) == 0 {
		return "", fmt.Errorf("figure %q has no charts", fig.Name)
	}

	row := make([]*plot.Plot, len(fig.Charts))
	for i, c := range fig.Charts {
		p, err := buildPlot(c)
		if err != nil {
			return "", fmt.Errorf("figure %q chart %d: %w", fig.Name, i, err)
		}
		row[i] = p
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for j, p := range row {
		p.Draw(canvases[0][j])
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("%02d-%s.png", seq, fig.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

func buildPlot(c Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	if c.XTime {
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	}

	for _, s := range c.Series {
		if err := addSeries(p, s); err != nil {
			return nil, err
		}
	}

	// Markers span the current data window; fixed ranges are applied last.
	xmin, xmax := p.X.Min, p.X.Max
	ymin, ymax := p.Y.Min, p.Y.Max
	if c.XRange != nil {
		xmin, xmax = c.XRange.Min, c.XRange.Max
	}
	if c.YRange != nil {
		ymin, ymax = c.YRange.Min, c.YRange.Max
	}
	for _, m := range c.Markers {
		if err := addMarker(p, m, xmin, xmax, ymin, ymax); err != nil {
			return nil, err
		}
	}

	if c.XRange != nil {
		p.X.Min, p.X.Max = c.XRange.Min, c.XRange.Max
	}
	if c.YRange != nil {
		p.Y.Min, p.Y.Max = c.YRange.Min, c.YRange.Max
	}
	return p, nil
}

func addSeries(p *plot.Plot, s Series) error {
	col, err := parseColor(s.Color, s.Alpha)
	if err != nil {
		return err
	}

	switch s.Kind {
	case Scatter:
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values, %d y values", s.Label, len(s.X), len(s.Y))
		}
		xys := make(plotter.XYs, len(s.X))
		for i := range s.X {
			xys[i].X = s.X[i]
			xys[i].Y = s.Y[i]
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(orDefault(s.Radius, 0.5))
		p.Add(sc)
		if s.Label != "" {
			p.Legend.Add(s.Label, sc)
		}

	case Hist:
		bins := make([]plotter.HistogramBin, len(s.Bins))
		for i, b := range s.Bins {
			bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Weight}
		}
		var width float64
		if len(bins) > 0 {
			width = bins[0].Max - bins[0].Min
		}
		h := &plotter.Histogram{
			Bins:      bins,
			Width:     width,
			FillColor: col,
			LineStyle: draw.LineStyle{Width: 0},
		}
		p.Add(h)
		if s.Label != "" {
			p.Legend.Add(s.Label, h)
		}

	case Bars:
		bc, err := plotter.NewBarChart(plotter.Values(s.Values), vg.Points(20))
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		bc.Color = col
		bc.LineStyle.Width = 0
		p.Add(bc)
		if len(s.Labels) > 0 {
			p.NominalX(s.Labels...)
		}
		if s.Label != "" {
			p.Legend.Add(s.Label, bc)
		}

	default:
		return fmt.Errorf("series %q: unknown kind %d", s.Label, s.Kind)
	}
	return nil
}

func addMarker(p *plot.Plot, m Marker, xmin, xmax, ymin, ymax float64) error {
	col, err := parseColor(m.Color, 0)
	if err != nil {
		return err
	}

	var pts plotter.XYs
	switch m.Axis {
	case Vertical:
		pts = plotter.XYs{{X: m.Value, Y: ymin}, {X: m.Value, Y: ymax}}
	case Horizontal:
		pts = plotter.XYs{{X: xmin, Y: m.Value}, {X: xmax, Y: m.Value}}
	default:
		return fmt.Errorf("marker %q: unknown axis %d", m.Label, m.Axis)
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("marker %q: %w", m.Label, err)
	}
	l.LineStyle.Color = col
	l.LineStyle.Width = vg.Points(orDefault(m.Width, 1))
	switch m.Style {
	case Dashed:
		l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	case Dotted:
		l.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
	}
	p.Add(l)
	if m.Label != "" {
		p.Legend.Add(m.Label, l)
	}
	return nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// the matplotlib names the analysis uses, plus its default cycle
var namedColors = map[string]color.NRGBA{
	"":       {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"c0":     {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"c1":     {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"blue":   {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"red":    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"orange": {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"pink":   {R: 0xff, G: 0xc0, B: 0xcb, A: 0xff},
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
}

// parseColor accepts a name from namedColors or "#rrggbb". alpha in (0,1]
// overrides opacity.
func parseColor(name string, alpha float64) (color.NRGBA, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	c, ok := namedColors[key]
	if !ok {
		hex := strings.TrimPrefix(key, "#")
		if len(hex) != 6 || hex == key {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", name)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", name)
		}
		c = color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	}
	if alpha > 0 && alpha < 1 {
		c.A = uint8(math.Round(alpha * 255))
	}
	return c, nil
}
