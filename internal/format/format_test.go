package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finlens/finlens/internal/statement"
)

func TestValue(t *testing.T) {
	assert.Equal(t, "1,234,568", Value(1234567.8))
	assert.Equal(t, "0", Value(0))
	assert.Equal(t, "-500", Value(-500))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "40.00%", Percent(40))
	assert.Equal(t, "-12.35%", Percent(-12.345))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "2.00", Ratio(statement.Ratio{Value: 2, Valid: true}))
	assert.Equal(t, "N/A", Ratio(statement.Ratio{}))
}

func TestDelta(t *testing.T) {
	assert.Equal(t, "+1.00", Delta(1))
	assert.Equal(t, "-0.25", Delta(-0.25))
}
