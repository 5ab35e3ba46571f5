package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("AcceptsWellFormedAmounts", func(t *testing.T) {
		cases := []struct {
			input string
			want  int64
		}{
			{"100", 10000},
			{"100.5", 10050},
			{"100.50", 10050},
			{"1,000.00", 100000},
			{"  250.75  ", 25075},
			{"₹42", 4200},
			{"₹ 1,234.56", 123456},
			{"0.01", 1},
		}
		for _, tc := range cases {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	})

	t.Run("RoundsHalfUpToTwoPlaces", func(t *testing.T) {
		cases := []struct {
			input string
			want  int64
		}{
			{"100.555", 10056},
			{"100.554", 10055},
			{"0.005", 1},
			{"99.999", 10000},
		}
		for _, tc := range cases {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	})

	t.Run("RejectsMalformedInput", func(t *testing.T) {
		for _, input := range []string{"", "   ", "abc", "12.3.4", "10 00", "₹"} {
			_, err := ParseAmount(input)
			assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", input)
		}
	})

	t.Run("RejectsNonPositiveAmounts", func(t *testing.T) {
		for _, input := range []string{"0", "0.00", "-5", "-0.01", "0.004"} {
			_, err := ParseAmount(input)
			assert.ErrorIs(t, err, ErrNonPositiveAmount, "input %q", input)
		}
	})
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{0, "₹0.00"},
		{1, "₹0.01"},
		{10050, "₹100.50"},
		{100000, "₹1000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.paise))
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, paise := range []int64{1, 99, 100, 10000, 10050, 123456789} {
		parsed, err := ParseAmount(FormatAmount(paise))
		require.NoError(t, err)
		assert.Equal(t, paise, parsed)
	}
}
