package stats

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Totals are the lifetime completed-visit aggregates of one salon.
type Totals struct {
	Visits  int64           `json:"total_visits"`
	Revenue decimal.Decimal `json:"total_revenue"`
}

func (t Totals) Equal(o Totals) bool {
	return t.Visits == o.Visits && t.Revenue.Equal(o.Revenue)
}

// ApplyIncrement adds one visit worth revenue.
func ApplyIncrement(t Totals, revenue decimal.Decimal) (Totals, error) {
	if revenue.IsNegative() {
		return t, httperr.Validation("negative_revenue_delta", map[string]string{
			"revenue": "must be >= 0",
		})
	}
	return Totals{
		Visits:  t.Visits + 1,
		Revenue: t.Revenue.Add(revenue),
	}, nil
}

// ApplyDecrement removes one visit worth revenue. Both totals are clamped at
// zero; drift reports that the unclamped result would have gone negative.
func ApplyDecrement(t Totals, revenue decimal.Decimal) (out Totals, drift bool, err error) {
	if revenue.IsNegative() {
		return t, false, httperr.Validation("negative_revenue_delta", map[string]string{
			"revenue": "must be >= 0",
		})
	}

	out.Visits = t.Visits - 1
	if out.Visits < 0 {
		out.Visits = 0
		drift = true
	}

	out.Revenue = t.Revenue.Sub(revenue)
	if out.Revenue.IsNegative() {
		out.Revenue = decimal.Zero
		drift = true
	}

	return out, drift, nil
}
