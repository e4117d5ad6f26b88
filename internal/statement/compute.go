package statement

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Compute derives growth rate and per-period asset weights for every row.
// It returns a new Statement; the input is never mutated.
//
// Growth per row is (current - prior) / prior * 100, with Epsilon standing
// in for a zero prior. Weights divide each row's value by the TOTAL ASSETS
// value for the same period, with the same zero substitution applied per
// period independently.
//
// The pass fails when the statement has no TOTAL ASSETS row, or when more
// than one row matches it — an ambiguous denominator would silently skew
// every weight in the table.
func Compute(st *Statement) (*Statement, error) {
	total, err := st.Find(TotalAssetsItem)
	if err != nil {
		if eris.Is(err, ErrLineItemNotFound) {
			return nil, eris.Wrap(ErrNoTotalAssets, "compute")
		}
		return nil, eris.Wrap(err, "compute")
	}

	priorTotal := safeDivisor(total.Prior)
	currentTotal := safeDivisor(total.Current)

	out := st.clone()
	for i := range out.Rows {
		r := &out.Rows[i]
		r.Growth = (r.Current - r.Prior) / safeDivisor(r.Prior) * 100
		r.PriorWeight = r.Prior / priorTotal * 100
		r.CurrentWeight = r.Current / currentTotal * 100
	}
	out.Computed = true

	zap.L().Debug("statement computed",
		zap.Int("rows", len(out.Rows)),
		zap.Float64("total_assets_prior", total.Prior),
		zap.Float64("total_assets_current", total.Current),
	)

	return out, nil
}
