package statement

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_StableAndContentAddressed(t *testing.T) {
	a := sampleStatement()
	b := sampleStatement()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.Rows[0].Current++
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_IgnoresDerivedColumns(t *testing.T) {
	raw := sampleStatement()
	computed, err := Compute(raw)
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(raw), Fingerprint(computed))
}

func TestCache_HitsOnUnchangedContent(t *testing.T) {
	c := NewCache()

	first, err := c.Compute(sampleStatement())
	require.NoError(t, err)

	second, err := c.Compute(sampleStatement())
	require.NoError(t, err)

	// Identical content returns the identical cached result.
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCache_DistinctContentDistinctEntries(t *testing.T) {
	c := NewCache()

	_, err := c.Compute(sampleStatement())
	require.NoError(t, err)

	other := sampleStatement()
	other.Rows[1].Current = 999
	_, err = c.Compute(other)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := NewCache()

	bad := &Statement{Rows: []Row{{Name: "Cash", Prior: 1, Current: 2}}}
	_, err := c.Compute(bad)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoTotalAssets))
	assert.Equal(t, 0, c.Len())
}
