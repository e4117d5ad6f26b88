package statement

import (
	"strconv"
	"strings"
)

// ParseValue converts a spreadsheet cell to a float64, tolerating the
// formats statements show up in: thousands separators ("1,234,567"),
// European decimal commas ("1.234,56"), accounting negatives ("(1234)"),
// currency prefixes, and stray whitespace. Cells that still do not parse
// coerce to zero, matching the engine's treatment of missing values.
func ParseValue(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}

	// Accounting negative: (1,234) means -1234.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	// Strip everything that is not a digit, sign, or separator.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+':
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0
	}

	s = normalizeSeparators(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}

// normalizeSeparators rewrites s so '.' is the decimal separator and no
// grouping separators remain. When both ',' and '.' appear, whichever comes
// last is the decimal separator. A lone comma is read as a decimal separator
// unless it is followed by exactly three digits, the grouping convention.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: dots group, final comma is decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		// Multiple dots can only be grouping.
		s = strings.ReplaceAll(s, ".", "")
	}

	return s
}
