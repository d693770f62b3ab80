// Package chart renders horizontal bar charts as SVG files.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chart is a category -> value mapping plus its captions.
type Chart struct {
	Title  string
	XLabel string // value axis
	YLabel string // category axis
	Data   map[string]float64
}

// SVGStore writes charts into Dir and serves them under URLPrefix.
type SVGStore struct {
	Dir       string
	URLPrefix string
	// Keep is how long an earlier rendering of the same chart stays on disk
	// for pages that still reference it.
	Keep time.Duration
}

func NewSVGStore(dir, urlPrefix string) *SVGStore {
	return &SVGStore{Dir: dir, URLPrefix: urlPrefix, Keep: 5 * time.Minute}
}

var reName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Render writes c as <name>-<uuid>.svg and returns its URL. Every rendering
// gets its own file, so a page never shows the chart drawn for another
// request. The file appears atomically.
func (s *SVGStore) Render(_ context.Context, name string, c Chart) (string, error) {
	if !reName.MatchString(name) {
		return "", fmt.Errorf("chart: invalid name %q", name)
	}
	var buf bytes.Buffer
	if err := svgTmpl.Execute(&buf, layout(c)); err != nil {
		return "", fmt.Errorf("chart: render %s: %w", name, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("chart: %w", err)
	}
	file := name + "-" + uuid.NewString() + ".svg"
	tmp := filepath.Join(s.Dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("chart: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, file)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("chart: write %s: %w", name, err)
	}
	s.prune(name, file)
	return s.URLPrefix + "/" + file, nil
}

// prune removes earlier renderings of name older than Keep. Failures only
// leave files behind.
func (s *SVGStore) prune(name, current string) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		fn := e.Name()
		if fn == current || !isRendering(fn, name) {
			continue
		}
		info, err := e.Info()
		if err != nil || time.Since(info.ModTime()) < s.Keep {
			continue
		}
		_ = os.Remove(filepath.Join(s.Dir, fn))
	}
}

// isRendering reports whether fn is <name>-<uuid>.svg.
func isRendering(fn, name string) bool {
	rest, ok := strings.CutPrefix(fn, name+"-")
	if !ok {
		return false
	}
	id, ok := strings.CutSuffix(rest, ".svg")
	if !ok {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

const (
	width     = 640
	barHeight = 22
	barGap    = 6
	labelW    = 150
	plotW     = 430
	topPad    = 40
	bottomPad = 44
)

type bar struct {
	Label string
	Value string
	X, Y  float64
	W     float64
	TextY float64
}

type view struct {
	Title, XLabel, YLabel string
	Width, Height         int
	Bars                  []bar
	AxisX                 float64
	PlotTop, PlotBottom   float64
	XLabelY               float64
	TitleX, LabelX        float64
	Empty                 bool
}

func layout(c Chart) view {
	keys := make([]string, 0, len(c.Data))
	for k := range c.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lo, hi := 0.0, 0.0
	for _, k := range keys {
		lo = math.Min(lo, c.Data[k])
		hi = math.Max(hi, c.Data[k])
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	scale := plotW / span
	axis := float64(labelW) + (-lo)*scale

	h := topPad + bottomPad + len(keys)*(barHeight+barGap)
	if len(keys) == 0 {
		h = topPad + bottomPad + barHeight
	}
	v := view{
		Title: c.Title, XLabel: c.XLabel, YLabel: c.YLabel,
		Width: width, Height: h, AxisX: axis,
		PlotTop: topPad, PlotBottom: float64(h - bottomPad),
		XLabelY: float64(h - 12), Empty: len(keys) == 0,
		TitleX: width / 2, LabelX: labelW - 6,
	}
	for i, k := range keys {
		val := c.Data[k]
		y := float64(topPad + i*(barHeight+barGap))
		x := axis
		if val < 0 {
			x = axis + val*scale
		}
		v.Bars = append(v.Bars, bar{
			Label: k,
			Value: formatValue(val),
			X:     x, Y: y,
			W:     math.Abs(val) * scale,
			TextY: y + barHeight*0.7,
		})
	}
	return v
}

func formatValue(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.2f", f)
}

var svgTmpl = template.Must(template.New("svg").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="sans-serif" font-size="12">
<rect width="100%" height="100%" fill="#ffffff"/>
<text x="{{.TitleX}}" y="22" text-anchor="middle" font-size="15" font-weight="bold">{{.Title}}</text>
<text x="14" y="{{.PlotTop}}" transform="rotate(-90 14 {{.PlotTop}})" text-anchor="end">{{.YLabel}}</text>
{{$lx := .LabelX}}{{range .Bars}}<text x="{{$lx}}" y="{{printf "%.1f" .TextY}}" text-anchor="end">{{.Label}}</text>
<rect x="{{printf "%.1f" .X}}" y="{{printf "%.1f" .Y}}" width="{{printf "%.1f" .W}}" height="22" fill="#1f77b4"><title>{{.Label}}: {{.Value}}</title></rect>
{{end}}{{if .Empty}}<text x="{{.AxisX}}" y="{{.PlotTop}}" dy="16">no data</text>
{{end}}<line x1="{{printf "%.1f" .AxisX}}" y1="{{.PlotTop}}" x2="{{printf "%.1f" .AxisX}}" y2="{{.PlotBottom}}" stroke="#333333"/>
<text x="{{printf "%.1f" .AxisX}}" y="{{.XLabelY}}" text-anchor="middle">{{.XLabel}}</text>
</svg>
`))
