package kernel

import (
	"strconv"
	"strings"
)

// Money is an amount in minor currency units. Amounts are never fractional.
type Money int64

// CurrencySign is appended by String.
const CurrencySign = "₸"

// Times multiplies a unit price by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other < m {
		return other
	}
	return m
}

// NonNegative clamps m at zero.
func (m Money) NonNegative() Money {
	if m < 0 {
		return 0
	}
	return m
}

func (m Money) Int64() int64 {
	return int64(m)
}

// String renders the amount with space-separated digit groups, e.g. "12 500 ₸".
func (m Money) String() string {
	digits := strconv.FormatInt(int64(m), 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteRune(' ')
	b.WriteString(CurrencySign)
	return b.String()
}
