package schema

import (
	"fmt"
	"strings"
	"time"
)

// Fallback display strings shared by the report assembler and renderers.
const (
	FallbackNA   = "N/A"
	FallbackTBD  = "TBD"
	FallbackNone = "None"
)

// DateFormat is the display format for dates in reports.
const DateFormat = "2006-01-02"

// SeverityLabel returns the display label for a severity band.
func SeverityLabel(s Severity) string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// FormatCurrency renders a currency amount with thousands separators,
// e.g. 1234567.5 -> "$1,234,567.50".
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("$%s.%02d", b.String(), cents)
	if neg {
		return "-" + out
	}
	return out
}

// FormatDate renders an optional date, falling back to "N/A".
func FormatDate(t *time.Time) string {
	if t == nil {
		return FallbackNA
	}
	return t.Format(DateFormat)
}

// FormatDays renders a day count like "5d", trimming a trailing ".0".
func FormatDays(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s + "d"
}

// FormatList joins a string set for display, falling back to "None".
func FormatList(items []string) string {
	if len(items) == 0 {
		return FallbackNone
	}
	return strings.Join(items, ", ")
}

// TruncateName shortens a display name to at most width runes, keeping
// a trailing ellipsis so truncation stays visible.
func TruncateName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	rr := []rune(name)
	if len(rr) <= width {
		return name
	}
	if width <= 3 {
		return string(rr[:width])
	}
	return string(rr[:width-3]) + "..."
}
