package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100.00"},
		{"0.5", "0.50"},
		{"12.3456", "12.35"},
		{"-3.1", "-3.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
	assert.Equal(t, "12.3456000", FormatWithPrecision(decimal.RequireFromString("12.3456"), 7))
}
