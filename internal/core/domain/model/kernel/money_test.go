package kernel_test

import (
	"strings"
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name  string
		value kernel.Money
		want  string
	}{
		{"zero", 0, "0 ₸"},
		{"hundreds", 900, "900 ₸"},
		{"thousands", 12500, "12 500 ₸"},
		{"millions", 1234567, "1 234 567 ₸"},
		{"negative", -4500, "-4 500 ₸"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestMoney_String_PlainSpaces(t *testing.T) {
	s := kernel.Money(98765432).String()

	assert.Equal(t, 3, strings.Count(s, " "))
	assert.NotContains(t, s, "\u2009")
	assert.NotContains(t, s, "\u00a0")
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.Money(1000)

	assert.Equal(t, kernel.Money(2000), price.Times(2))
	assert.Equal(t, kernel.Money(300), price.Min(300))
	assert.Equal(t, kernel.Money(1000), price.Min(5000))
	assert.Equal(t, kernel.Money(0), kernel.Money(-5).NonNegative())
	assert.Equal(t, int64(1000), price.Int64())
}
