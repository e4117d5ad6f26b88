// Package statement holds the financial statement domain model and the
// ratio derivations computed over it.
package statement

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Epsilon replaces an exact-zero divisor so ratio division stays defined.
// Results built on it are large-magnitude sentinels, not genuine rates.
const Epsilon = 1e-9

// Well-known line items resolved by fuzzy lookup.
const (
	TotalAssetsItem          = "TOTAL ASSETS"
	ShortTermAssetsItem      = "SHORT-TERM ASSETS"
	ShortTermLiabilitiesItem = "SHORT-TERM LIABILITIES"
)

// Sentinel errors surfaced by lookup and compute.
var (
	ErrNoTotalAssets     = eris.New("statement: no TOTAL ASSETS line item")
	ErrLineItemNotFound  = eris.New("statement: line item not found")
	ErrAmbiguousLineItem = eris.New("statement: line item matches multiple rows")
)

// Row is one line item of a financial statement. Prior and Current are the
// reported values for the two periods; the remaining fields are derived by
// Compute and are zero until then.
type Row struct {
	Name    string  `json:"name"`
	Prior   float64 `json:"prior"`
	Current float64 `json:"current"`

	Growth        float64 `json:"growth_pct"`
	PriorWeight   float64 `json:"prior_weight_pct"`
	CurrentWeight float64 `json:"current_weight_pct"`
}

// Statement is an ordered financial statement table.
type Statement struct {
	Rows []Row `json:"rows"`

	// Computed marks that derived columns have been filled in.
	Computed bool `json:"computed"`
}

// Find resolves a line item by case-insensitive substring match on the row
// name. Zero matches return ErrLineItemNotFound; more than one match returns
// ErrAmbiguousLineItem rather than silently picking the first.
func (s *Statement) Find(name string) (Row, error) {
	needle := strings.ToUpper(name)

	var found Row
	matches := 0
	for _, r := range s.Rows {
		if strings.Contains(strings.ToUpper(r.Name), needle) {
			if matches == 0 {
				found = r
			}
			matches++
		}
	}

	switch matches {
	case 0:
		return Row{}, eris.Wrapf(ErrLineItemNotFound, "lookup %q", name)
	case 1:
		return found, nil
	default:
		return Row{}, eris.Wrapf(ErrAmbiguousLineItem, "lookup %q matched %d rows", name, matches)
	}
}

// clone returns a deep copy so Compute never mutates its input.
func (s *Statement) clone() *Statement {
	out := &Statement{
		Rows:     make([]Row, len(s.Rows)),
		Computed: s.Computed,
	}
	copy(out.Rows, s.Rows)
	return out
}

// safeDivisor substitutes Epsilon for an exact-zero divisor.
func safeDivisor(v float64) float64 {
	if v == 0 {
		return Epsilon
	}
	return v
}
