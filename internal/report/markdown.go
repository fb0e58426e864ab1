package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataexplorer/internal/profile"
)

// Markdown renders a compact summary of p suitable for a terminal or a standalone doc.
func Markdown(p *profile.Profile) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Dataset != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s\n", p.Dataset))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", p.Cols))
	b.WriteString(fmt.Sprintf("Missing cells: %d (%.1f%%)\n", p.MissingCells, p.MissingPct))
	b.WriteString(fmt.Sprintf("Duplicate rows: %d\n\n", p.DuplicateRows))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.Count, c.MissingPct))
		switch c.Kind {
		case profile.KindNumeric:
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutliersCount > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d (max |z|≈%.2f)", c.OutliersCount, c.OutliersMaxAbsZ))
			}
		case profile.KindDatetime:
			b.WriteString(fmt.Sprintf(": %s .. %s", c.MinDate, c.MaxDate))
		case profile.KindBoolean, profile.KindCategorical:
			if len(c.TopValues) > 0 {
				b.WriteString(": top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Distinct > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Distinct))
				}
			}
		case profile.KindText:
			if len(c.ExampleTexts) > 0 {
				b.WriteString(": e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}
	for _, m := range []*profile.CorrMatrix{p.Pearson, p.Spearman} {
		pairs := m.TopPairs(10)
		if len(pairs) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n[CORRELATIONS: %s]\n", strings.ToUpper(m.Method)))
		for _, pr := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", pr.A, pr.B, pr.R))
		}
	}
	if len(p.Sample) > 0 {
		b.WriteString("\n[HEAD]\n")
		b.WriteString(PreviewMarkdown(p.SampleHeader, p.Sample))
	}
	if len(p.Alerts) > 0 {
		b.WriteString("\n[ALERTS]\n")
		for _, a := range p.Alerts {
			b.WriteString("- ")
			b.WriteString(a.Message)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PreviewMarkdown renders rows as a Markdown pipe table under columns.
func PreviewMarkdown(columns []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| ")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(safeName(c)))
	}
	b.WriteString(" |\n| ")
	for i := range columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if r := []rune(val); len(r) > 80 {
				val = string(r[:77]) + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
