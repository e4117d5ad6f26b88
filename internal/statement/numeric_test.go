package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1234", 1234},
		{"1234.56", 1234.56},
		{"1,234,567", 1234567},
		{"1,234.56", 1234.56},
		{"1.234.567", 1234567},
		{"1.234,56", 1234.56},
		{"1,23", 1.23},
		{"-42", -42},
		{"(1,234)", -1234},
		{"( 500 )", -500},
		{"$2,000", 2000},
		{"2 000 000", 2000000},
		{"  15.5  ", 15.5},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseValue(tt.in), 1e-9)
		})
	}
}
