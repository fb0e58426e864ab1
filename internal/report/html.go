package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"github.com/KaramelBytes/dataexplorer/internal/profile"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTmpl = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"num":      formatNum,
	"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"corr":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"heat":     heatStyle,
	"barWidth": barWidth,
	"maxBin":   maxBin,
	"list": func(ms ...*profile.CorrMatrix) []*profile.CorrMatrix {
		return ms
	},
	"isNumeric": func(k profile.Kind) bool {
		return k == profile.KindNumeric
	},
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// RenderHTML renders p as a self-contained HTML document. Output depends only
// on p, so equal profiles render byte-identical documents.
func RenderHTML(p *profile.Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("render html: nil profile")
	}
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func formatNum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.4g", v)
}

// heatStyle colors a correlation cell: coral for positive, blue for negative.
func heatStyle(r float64) template.CSS {
	a := math.Min(math.Abs(r), 1)
	base := [3]float64{0x22, 0x22, 0x22}
	target := [3]float64{0xff, 0x6f, 0x61}
	if r < 0 {
		target = [3]float64{0x4a, 0x90, 0xd9}
	}
	var c [3]int
	for i := range c {
		c[i] = int(math.Round(base[i] + (target[i]-base[i])*a))
	}
	return template.CSS(fmt.Sprintf("background-color:#%02x%02x%02x", c[0], c[1], c[2]))
}

func barWidth(count, max int) template.CSS {
	w := 0.0
	if max > 0 {
		w = float64(count) * 100 / float64(max)
	}
	return template.CSS(fmt.Sprintf("width:%.1f%%", w))
}

func maxBin(bins []profile.Bin) int {
	m := 0
	for _, b := range bins {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}
