package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCents_String(t *testing.T) {
	tests := []struct {
		name  string
		value Cents
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"under a dollar", 99, "$0.99"},
		{"exact dollars", 2000, "$20.00"},
		{"dollars and cents", 4992, "$49.92"},
		{"thousands grouping", 500000, "$5,000.00"},
		{"millions grouping", 123456789, "$1,234,567.89"},
		{"negative", -4200, "-$42.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestCents_Dollars(t *testing.T) {
	assert.Equal(t, int64(50), Cents(5000).Dollars())
	assert.Equal(t, int64(0), Cents(99).Dollars())
}
