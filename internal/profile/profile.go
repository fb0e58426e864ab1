package profile

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindBoolean     Kind = "boolean"
	KindDatetime    Kind = "datetime"
	KindCategorical Kind = "categorical"
	KindText        Kind = "text"
	// KindEmpty marks a column with no non-missing value.
	KindEmpty Kind = "empty"
)

// Options controls profiling behavior.
type Options struct {
	// Title is the report title.
	Title string
	// Minimal bounds computation on large inputs: Pearson correlations only,
	// capped at MaxCorrColumns numeric columns.
	Minimal bool
	// MaxCorrColumns caps the numeric columns entering the correlation matrix
	// in minimal mode; 0 means no cap.
	MaxCorrColumns int
	// TopValues is the number of most frequent values kept per column.
	TopValues int
	// HistogramBins is the number of equal-width bins for numeric columns.
	HistogramBins int
	// SampleRows is the number of leading rows embedded in the profile.
	SampleRows int
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// OutlierThreshold is the robust |z| (MAD based) above which a value counts as an outlier.
	OutlierThreshold float64
	// HighCorrelation is the |r| above which a pair of columns raises an alert.
	HighCorrelation float64
}

// DefaultOptions returns the reduced profiling configuration used by the shell.
func DefaultOptions() Options {
	return Options{
		Title:            "Data Profiling",
		Minimal:          true,
		MaxCorrColumns:   20,
		TopValues:        8,
		HistogramBins:    10,
		SampleRows:       10,
		OutlierThreshold: 3.5,
		HighCorrelation:  0.9,
	}
}

// Profile is the computed statistical summary of a dataset.
type Profile struct {
	Title         string
	Dataset       string
	Minimal       bool
	Rows          int
	Cols          int
	MissingCells  int
	MissingPct    float64
	DuplicateRows int
	Kinds         map[Kind]int
	Columns       []ColumnProfile
	Pearson       *CorrMatrix
	Spearman      *CorrMatrix
	Alerts        []Alert
	SampleHeader  []string
	Sample        [][]string
}

// ColumnProfile captures inferred type and statistics per column.
type ColumnProfile struct {
	Name        string
	Kind        Kind
	Count       int // non-missing
	Missing     int
	MissingPct  float64
	Distinct    int
	DistinctPct float64
	// Numeric stats
	Mean     float64
	Std      float64
	Min      float64
	Q25      float64
	Median   float64
	Q75      float64
	Max      float64
	Skewness float64
	Kurtosis float64
	Zeros    int
	// Overflow is set when Std exceeded the float64 range and was zeroed.
	Overflow bool
	// Invalid counts values that did not parse as the column's kind.
	Invalid int
	// Outliers (robust Z via MAD)
	OutliersCount   int
	OutliersMaxAbsZ float64
	Histogram       []Bin
	// Datetime range
	MinDate string
	MaxDate string
	// Categorical/text
	TopValues    []CategoryCount
	MeanLength   float64
	ExampleTexts []string
}

// CategoryCount is a value and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// Bin is one equal-width histogram bucket, [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// CorrMatrix holds a symmetric correlation matrix across numeric columns.
type CorrMatrix struct {
	Method  string
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// Alert is a notable property of the data, such as a constant column.
type Alert struct {
	Column  string
	Kind    string
	Message string
}

// TopPairs returns up to n off-diagonal pairs ordered by |r| descending.
func (m *CorrMatrix) TopPairs(n int) []PairCorr {
	if m == nil {
		return nil
	}
	var pairs []PairCorr
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sortPairs(pairs)
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// Column returns the profile of the named column.
func (p *Profile) Column(name string) (ColumnProfile, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}
