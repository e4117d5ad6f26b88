package statement

// Ratio is one period's current ratio. Valid is false when the line items
// needed to compute it were missing or ambiguous.
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Snapshot pairs the prior- and current-period liquidity ratios.
type Snapshot struct {
	Prior   Ratio `json:"prior"`
	Current Ratio `json:"current"`
}

// Delta is the change in the current ratio between the two periods.
// Reported only when both periods computed.
func (s Snapshot) Delta() (float64, bool) {
	if !s.Prior.Valid || !s.Current.Valid {
		return 0, false
	}
	return s.Current.Value - s.Prior.Value, true
}

// Liquidity computes the current ratio (short-term assets over short-term
// liabilities) for both periods. A missing or ambiguous line item makes the
// affected ratios unavailable instead of failing: liquidity degrades on its
// own, the rest of the dashboard still renders.
func Liquidity(st *Statement) Snapshot {
	assets, aerr := st.Find(ShortTermAssetsItem)
	liabilities, lerr := st.Find(ShortTermLiabilitiesItem)
	if aerr != nil || lerr != nil {
		return Snapshot{}
	}

	return Snapshot{
		Prior: Ratio{
			Value: assets.Prior / safeDivisor(liabilities.Prior),
			Valid: true,
		},
		Current: Ratio{
			Value: assets.Current / safeDivisor(liabilities.Current),
			Valid: true,
		},
	}
}
