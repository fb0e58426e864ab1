package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
)

const maxExampleTexts = 3

// Generate computes the profile of ds. Any failure, including a panic inside
// the statistics code, is returned as a *ProfilingError.
func Generate(ds *dataset.Dataset, opt Options) (p *Profile, err error) {
	var name string
	if ds != nil {
		name = ds.Name
	}
	defer func() {
		if rec := recover(); rec != nil {
			p, err = nil, &ProfilingError{Dataset: name, Err: fmt.Errorf("unexpected failure: %v", rec)}
		}
	}()
	if ds.Empty() {
		return nil, &ProfilingError{Dataset: name, Err: dataset.ErrNoData}
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 8
	}
	if opt.HistogramBins <= 0 {
		opt.HistogramBins = 10
	}

	p = &Profile{
		Title:        opt.Title,
		Dataset:      name,
		Minimal:      opt.Minimal,
		Rows:         ds.NumRows(),
		Cols:         ds.NumCols(),
		Kinds:        map[Kind]int{},
		SampleHeader: append([]string(nil), ds.Columns...),
	}
	for _, row := range ds.Head(opt.SampleRows) {
		p.Sample = append(p.Sample, append([]string(nil), row...))
	}

	// numeric[j] holds one value per row (NaN when absent) for numeric columns.
	numeric := make([][]float64, p.Cols)
	for j, col := range ds.Columns {
		cp, vals := profileColumn(col, ds.Column(j), opt)
		p.Columns = append(p.Columns, cp)
		p.Kinds[cp.Kind]++
		p.MissingCells += cp.Missing
		if cp.Kind == KindNumeric {
			numeric[j] = vals
		}
	}
	if cells := p.Rows * p.Cols; cells > 0 {
		p.MissingPct = float64(p.MissingCells) * 100 / float64(cells)
	}
	p.DuplicateRows = countDuplicates(ds.Rows)

	var corrIdx []int
	for j := range numeric {
		if numeric[j] != nil {
			corrIdx = append(corrIdx, j)
		}
	}
	if opt.Minimal && opt.MaxCorrColumns > 0 && len(corrIdx) > opt.MaxCorrColumns {
		corrIdx = corrIdx[:opt.MaxCorrColumns]
		p.Alerts = append(p.Alerts, Alert{Kind: "correlations truncated",
			Message: fmt.Sprintf("correlations limited to the first %d numeric columns", opt.MaxCorrColumns)})
	}
	if len(corrIdx) >= 2 {
		p.Pearson = corrMatrix("pearson", ds.Columns, numeric, corrIdx, false)
		if !opt.Minimal {
			p.Spearman = corrMatrix("spearman", ds.Columns, numeric, corrIdx, true)
		}
	}
	p.Alerts = append(p.Alerts, alerts(p, opt)...)
	return p, nil
}

// profileColumn summarizes raw values. For numeric columns it also returns
// one float per row with NaN for missing or unparsable cells.
func profileColumn(name string, raw []string, opt Options) (ColumnProfile, []float64) {
	cp := ColumnProfile{Name: name}
	present := make([]string, 0, len(raw))
	for _, v := range raw {
		if dataset.IsMissing(v) {
			cp.Missing++
			continue
		}
		present = append(present, strings.TrimSpace(v))
	}
	cp.Count = len(present)
	if len(raw) > 0 {
		cp.MissingPct = float64(cp.Missing) * 100 / float64(len(raw))
	}
	counts := map[string]int{}
	for _, v := range present {
		counts[v]++
	}
	cp.Distinct = len(counts)
	if cp.Count > 0 {
		cp.DistinctPct = float64(cp.Distinct) * 100 / float64(cp.Count)
	}
	cp.Kind = inferKind(present, opt)

	switch cp.Kind {
	case KindNumeric:
		vals := make([]float64, len(raw))
		var xs []float64
		for i, v := range raw {
			vals[i] = math.NaN()
			if dataset.IsMissing(v) {
				continue
			}
			x, ok := parseNumeric(v, opt)
			if !ok {
				cp.Invalid++
				continue
			}
			vals[i] = x
			xs = append(xs, x)
		}
		numericStats(&cp, xs, opt)
		return cp, vals
	case KindDatetime:
		var lo, hi time.Time
		for _, v := range present {
			t, ok := parseTimeMaybe(v)
			if !ok {
				cp.Invalid++
				continue
			}
			if lo.IsZero() || t.Before(lo) {
				lo = t
			}
			if hi.IsZero() || t.After(hi) {
				hi = t
			}
		}
		cp.MinDate = formatTime(lo)
		cp.MaxDate = formatTime(hi)
	case KindBoolean, KindCategorical:
		cp.TopValues = topValues(counts, opt.TopValues)
		cp.MeanLength = meanLength(present)
	case KindText:
		cp.TopValues = topValues(counts, opt.TopValues)
		cp.MeanLength = meanLength(present)
		for _, v := range present {
			if len(cp.ExampleTexts) >= maxExampleTexts {
				break
			}
			cp.ExampleTexts = append(cp.ExampleTexts, truncate(v, 120))
		}
	}
	return cp, nil
}

func numericStats(cp *ColumnProfile, xs []float64, opt Options) {
	if len(xs) == 0 {
		return
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	// Moments are taken over rescaled values so that sums of large inputs
	// cannot overflow; skewness and kurtosis are scale free.
	s := magnitude(sorted)
	scaled := rescale(sorted, s)
	cp.Mean = finite(stat.Mean(scaled, nil) * s)
	var sd float64
	if len(scaled) > 1 {
		sd = finite(stat.StdDev(scaled, nil))
	}
	cp.Std = sd * s
	if math.IsInf(cp.Std, 0) {
		cp.Std = 0
		cp.Overflow = true
	}
	cp.Min = sorted[0]
	cp.Max = sorted[len(sorted)-1]
	cp.Q25 = quantile(sorted, 0.25)
	cp.Median = quantile(sorted, 0.5)
	cp.Q75 = quantile(sorted, 0.75)
	if sd > 0 {
		cp.Skewness = finite(stat.Skew(scaled, nil))
		cp.Kurtosis = finite(stat.ExKurtosis(scaled, nil))
	}
	for _, x := range sorted {
		if x == 0 {
			cp.Zeros++
		}
	}
	cp.OutliersCount, cp.OutliersMaxAbsZ = robustOutliers(scaled, opt.OutlierThreshold)
	cp.Histogram = histogram(sorted, opt.HistogramBins)
}

func corrMatrix(method string, names []string, numeric [][]float64, idx []int, rank bool) *CorrMatrix {
	m := &CorrMatrix{Method: method}
	n := len(idx)
	m.Values = make([][]float64, n)
	for a := range m.Values {
		m.Values[a] = make([]float64, n)
	}
	for a, ja := range idx {
		m.Columns = append(m.Columns, names[ja])
		m.Values[a][a] = 1
		for b := a + 1; b < n; b++ {
			r := correlation(numeric[ja], numeric[idx[b]], rank)
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

func topValues(counts map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, CategoryCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func meanLength(vals []string) float64 {
	if len(vals) == 0 {
		return 0
	}
	total := 0
	for _, v := range vals {
		total += len([]rune(v))
	}
	return float64(total) / float64(len(vals))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func countDuplicates(rows [][]string) int {
	seen := make(map[string]struct{}, len(rows))
	dups := 0
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// alerts flags notable column and dataset properties.
func alerts(p *Profile, opt Options) []Alert {
	var out []Alert
	if p.DuplicateRows > 0 {
		out = append(out, Alert{Kind: "duplicates",
			Message: fmt.Sprintf("dataset has %d duplicate rows", p.DuplicateRows)})
	}
	for _, c := range p.Columns {
		switch {
		case c.Kind == KindEmpty:
			out = append(out, Alert{Column: c.Name, Kind: "empty", Message: fmt.Sprintf("%s has only missing values", c.Name)})
			continue
		case c.Distinct == 1:
			out = append(out, Alert{Column: c.Name, Kind: "constant", Message: fmt.Sprintf("%s has constant value %q", c.Name, firstValue(c))})
		case c.Distinct == c.Count && c.Count > 1 && c.Kind != KindNumeric:
			out = append(out, Alert{Column: c.Name, Kind: "unique", Message: fmt.Sprintf("%s has unique values", c.Name)})
		case c.Kind == KindCategorical && c.Distinct > 50:
			out = append(out, Alert{Column: c.Name, Kind: "high cardinality", Message: fmt.Sprintf("%s has %d distinct values", c.Name, c.Distinct)})
		}
		if c.MissingPct > 5 {
			out = append(out, Alert{Column: c.Name, Kind: "missing", Message: fmt.Sprintf("%s has %d (%.1f%%) missing values", c.Name, c.Missing, c.MissingPct)})
		}
		if c.Invalid > 0 {
			out = append(out, Alert{Column: c.Name, Kind: "mixed types", Message: fmt.Sprintf("%s has %d values that are not %s", c.Name, c.Invalid, c.Kind)})
		}
		if c.Kind == KindNumeric && c.Count > 0 && float64(c.Zeros) > 0.1*float64(c.Count) {
			out = append(out, Alert{Column: c.Name, Kind: "zeros", Message: fmt.Sprintf("%s has %d zeros", c.Name, c.Zeros)})
		}
		if c.Overflow {
			out = append(out, Alert{Column: c.Name, Kind: "overflow", Message: fmt.Sprintf("%s spans too wide a range for its standard deviation to be represented", c.Name)})
		}
		if c.Kind == KindNumeric && math.Abs(c.Skewness) > 20 {
			out = append(out, Alert{Column: c.Name, Kind: "skewed", Message: fmt.Sprintf("%s is highly skewed (γ1 = %.2f)", c.Name, c.Skewness)})
		}
	}
	if opt.HighCorrelation > 0 {
		for _, pr := range p.Pearson.TopPairs(0) {
			if math.Abs(pr.R) < opt.HighCorrelation {
				break
			}
			out = append(out, Alert{Column: pr.A, Kind: "high correlation",
				Message: fmt.Sprintf("%s is highly correlated with %s (r = %.2f)", pr.A, pr.B, pr.R)})
		}
	}
	return out
}

func firstValue(c ColumnProfile) string {
	if len(c.TopValues) > 0 {
		return c.TopValues[0].Value
	}
	if c.Kind == KindNumeric {
		return fmt.Sprintf("%g", c.Min)
	}
	return c.MinDate
}
