package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		expected string
	}{
		{
			name:     "nil amount",
			amount:   nil,
			decimals: 18,
			expected: "0",
		},
		{
			name:     "zero",
			amount:   big.NewInt(0),
			decimals: 18,
			expected: "0",
		},
		{
			name:     "zero decimals returns raw",
			amount:   big.NewInt(12345),
			decimals: 0,
			expected: "12345",
		},
		{
			name:     "whole token",
			amount:   new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
			decimals: 18,
			expected: "1",
		},
		{
			name:     "fractional with trailing zeros trimmed",
			amount:   mustBig(t, "1234500000000000000"),
			decimals: 18,
			expected: "1.2345",
		},
		{
			name:     "sub unit amount",
			amount:   big.NewInt(1),
			decimals: 6,
			expected: "0.000001",
		},
		{
			name:     "six decimal token",
			amount:   big.NewInt(2500000),
			decimals: 6,
			expected: "2.5",
		},
		{
			name:     "negative amount",
			amount:   big.NewInt(-1500000),
			decimals: 6,
			expected: "-1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUnits(tt.amount, tt.decimals))
		})
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals uint8
		expected string
		wantErr  bool
	}{
		{
			name:     "whole amount",
			value:    "1",
			decimals: 18,
			expected: "1000000000000000000",
		},
		{
			name:     "fractional amount",
			value:    "1.2345",
			decimals: 18,
			expected: "1234500000000000000",
		},
		{
			name:     "whitespace tolerated",
			value:    "  2.5 ",
			decimals: 6,
			expected: "2500000",
		},
		{
			name:     "zero",
			value:    "0",
			decimals: 18,
			expected: "0",
		},
		{
			name:     "exact decimal count",
			value:    "0.000001",
			decimals: 6,
			expected: "1",
		},
		{
			name:     "too many decimal places",
			value:    "0.0000001",
			decimals: 6,
			wantErr:  true,
		},
		{
			name:     "not a number",
			value:    "abc",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "empty",
			value:    "",
			decimals: 18,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.value, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	// 18-decimal values survive a format/parse cycle exactly
	values := []string{
		"1000000000000000000",
		"1234500000000000000",
		"1",
		"999999999999999999",
		"21000000000000",
	}
	for _, raw := range values {
		amount := mustBig(t, raw)
		formatted := FormatUnits(amount, 18)
		parsed, err := ParseUnits(formatted, 18)
		require.NoError(t, err, "formatted %q should parse", formatted)
		assert.Equal(t, raw, parsed.String())
	}
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}
