package wenmoon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value, e.g. a 24h price change of +4.2% is
// Percent(4.2).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Factor returns p/100 as an exact decimal, the multiplier form used by the
// valuation engine.
func (p Percent) Factor() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Div(decimal.NewFromInt(100))
}
