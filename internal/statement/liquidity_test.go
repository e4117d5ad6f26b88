package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiquidity_MissingLiabilities(t *testing.T) {
	st, err := Compute(&Statement{Rows: []Row{
		{Name: "TOTAL ASSETS", Prior: 100, Current: 200},
		{Name: "SHORT-TERM ASSETS", Prior: 40, Current: 120},
	}})
	require.NoError(t, err)

	snap := Liquidity(st)
	assert.False(t, snap.Prior.Valid)
	assert.False(t, snap.Current.Valid)

	_, ok := snap.Delta()
	assert.False(t, ok)

	// The rest of the table still computed in the same run.
	assert.InDelta(t, 200.0, st.Rows[1].Growth, 1e-9)
	assert.InDelta(t, 60.0, st.Rows[1].CurrentWeight, 1e-9)
}

func TestLiquidity_MissingAssets(t *testing.T) {
	snap := Liquidity(&Statement{Rows: []Row{
		{Name: "TOTAL ASSETS", Prior: 100, Current: 200},
		{Name: "SHORT-TERM LIABILITIES", Prior: 20, Current: 40},
	}})
	assert.False(t, snap.Prior.Valid)
	assert.False(t, snap.Current.Valid)
}

func TestLiquidity_AmbiguousRowsDegrade(t *testing.T) {
	snap := Liquidity(&Statement{Rows: []Row{
		{Name: "SHORT-TERM ASSETS", Prior: 40, Current: 120},
		{Name: "Other short-term assets", Prior: 5, Current: 5},
		{Name: "SHORT-TERM LIABILITIES", Prior: 20, Current: 40},
	}})
	assert.False(t, snap.Prior.Valid)
	assert.False(t, snap.Current.Valid)
}

func TestLiquidity_ZeroLiabilitiesUsesEpsilon(t *testing.T) {
	snap := Liquidity(&Statement{Rows: []Row{
		{Name: "SHORT-TERM ASSETS", Prior: 40, Current: 120},
		{Name: "SHORT-TERM LIABILITIES", Prior: 0, Current: 40},
	}})
	require.True(t, snap.Prior.Valid)
	assert.Greater(t, snap.Prior.Value, 1e9)
	assert.InDelta(t, 3.0, snap.Current.Value, 1e-9)
}

func TestSnapshotDelta(t *testing.T) {
	snap := Snapshot{
		Prior:   Ratio{Value: 2, Valid: true},
		Current: Ratio{Value: 3, Valid: true},
	}
	delta, ok := snap.Delta()
	require.True(t, ok)
	assert.InDelta(t, 1.0, delta, 1e-9)
}
