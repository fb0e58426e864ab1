package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Digit groups of three with a non-zero lead read as thousands separators,
// so "1,234" is 1234 while "0,5" stays a decimal comma.
var (
	commaGroups = regexp.MustCompile(`^[+-]?[1-9][0-9]{0,2}(,[0-9]{3})+$`)
	dotGroups   = regexp.MustCompile(`^[+-]?[1-9][0-9]{0,2}(\.[0-9]{3}){2,}$`)
)

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTimeMaybe(s string) (time.Time, bool) {
	// Bare integers such as years are numeric, not dates.
	if len(s) < 8 {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "t", "y":
		return true, true
	case "false", "no", "f", "n":
		return false, true
	}
	return false, false
}

// parseNumeric parses s honoring the configured separators. Non-finite
// results are rejected so they never reach the moment computations.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case commaGroups.MatchString(raw):
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		case dotGroups.MatchString(raw):
			dec, thou = ',', '.'
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// inferKind picks the predominant interpretation of the non-missing values.
func inferKind(vals []string, opt Options) Kind {
	if len(vals) == 0 {
		return KindEmpty
	}
	var boolCnt, numCnt, dtCnt, txtCnt int
	for _, v := range vals {
		if _, ok := parseBool(v); ok {
			boolCnt++
			continue
		}
		if _, ok := parseNumeric(v, opt); ok {
			numCnt++
			continue
		}
		if _, ok := parseTimeMaybe(v); ok {
			dtCnt++
			continue
		}
		txtCnt++
	}
	switch {
	case boolCnt == len(vals):
		return KindBoolean
	case numCnt > 0 && numCnt >= dtCnt && numCnt >= txtCnt+boolCnt:
		return KindNumeric
	case dtCnt > 0 && dtCnt >= txtCnt+boolCnt:
		return KindDatetime
	}
	return textOrCategorical(vals)
}

// textOrCategorical treats long, mostly unique strings as free text.
func textOrCategorical(vals []string) Kind {
	distinct := map[string]struct{}{}
	total := 0
	for _, v := range vals {
		distinct[v] = struct{}{}
		total += len([]rune(v))
	}
	meanLen := float64(total) / float64(len(vals))
	if float64(len(distinct)) > 0.5*float64(len(vals)) && meanLen >= 20 {
		return KindText
	}
	return KindCategorical
}
