package profile

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// quantile interpolates linearly at position q*(n-1) of sorted, the pandas and
// NumPy default. gonum's stat.LinInterp uses q*n and gives different quartiles.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// medianMAD computes median and MAD (median absolute deviation) of sorted values.
func medianMAD(sorted []float64) (median, mad float64) {
	if len(sorted) == 0 {
		return 0, 0
	}
	median = quantile(sorted, 0.5)
	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

// robustOutliers counts values whose modified z-score exceeds threshold.
func robustOutliers(sorted []float64, threshold float64) (count int, maxAbsZ float64) {
	if threshold <= 0 {
		return 0, 0
	}
	median, mad := medianMAD(sorted)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range sorted {
		z := math.Abs(0.6745 * (v - median) / mad)
		if z > threshold {
			count++
		}
		if z > maxAbsZ {
			maxAbsZ = z
		}
	}
	return count, maxAbsZ
}

// magnitude returns a power of two s such that max|x|/s lies in [1, 2), so
// sums and spans over x/s stay finite. Dividing by s is exact. Values already
// within [-1, 1] get s = 1.
func magnitude(xs []float64) float64 {
	if len(xs) == 0 {
		return 1
	}
	m := math.Max(math.Abs(floats.Min(xs)), math.Abs(floats.Max(xs)))
	if m <= 1 || math.IsInf(m, 0) || math.IsNaN(m) {
		return 1
	}
	_, exp := math.Frexp(m)
	return math.Ldexp(1, exp-1)
}

// rescale returns xs divided by s, leaving xs untouched.
func rescale(xs []float64, s float64) []float64 {
	if s == 1 {
		return xs
	}
	return floats.ScaleTo(make([]float64, len(xs)), 1/s, xs)
}

// histogram buckets sorted values into n equal-width bins spanning [min, max].
func histogram(sorted []float64, n int) []Bin {
	if len(sorted) == 0 || n <= 0 {
		return nil
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(sorted)}}
	}
	// hi-lo can overflow; bin edges are computed on rescaled values.
	s := magnitude(sorted)
	scaled := rescale(sorted, s)
	dividers := make([]float64, n+1)
	floats.Span(dividers, scaled[0], scaled[len(scaled)-1])
	// The top divider is exclusive; nudge it so the maximum lands in the last bin.
	dividers[n] = math.Nextafter(dividers[n], math.Inf(1))
	counts := stat.Histogram(nil, dividers, scaled, nil)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: dividers[i] * s, Hi: dividers[i+1] * s, Count: int(counts[i])}
	}
	bins[0].Lo = lo
	bins[n-1].Hi = hi
	return bins
}

// ranks assigns 1-based ranks, averaging ties.
func ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	out := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		r := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = r
		}
		i = j + 1
	}
	return out
}

// pairwise returns the values of a and b at rows where both are present.
func pairwise(a, b []float64) (xa, xb []float64) {
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xa = append(xa, a[i])
		xb = append(xb, b[i])
	}
	return
}

// correlation returns Pearson's r over complete pairs, or Spearman's rho when
// rank is set. Undefined results (fewer than two pairs, zero variance) are 0.
func correlation(a, b []float64, rank bool) float64 {
	xa, xb := pairwise(a, b)
	if len(xa) < 2 {
		return 0
	}
	if rank {
		xa, xb = ranks(xa), ranks(xb)
	} else {
		xa, xb = rescale(xa, magnitude(xa)), rescale(xb, magnitude(xb))
	}
	r := stat.Correlation(xa, xb, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

func sortPairs(pairs []PairCorr) {
	sort.SliceStable(pairs, func(i, j int) bool {
		ai := math.Abs(pairs[i].R)
		aj := math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
}
