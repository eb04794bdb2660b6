package ledger

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as $n,nnn.nn with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	v := d.Round(2)
	neg := v.IsNegative()
	v = v.Abs()
	units := v.IntPart()
	cents := v.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	s := fmt.Sprintf("$%s.%02d", humanize.Comma(units), cents)
	if neg {
		return "-" + s
	}
	return s
}

// ParseMoney parses a FormatMoney rendering back into a decimal.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
