package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in        float64
		precision int
		want      string
	}{
		{1234.567, 2, "1,234.57"},
		{1234.567, 0, "1,235"},
		{0.5, 1, "0.5"},
		{-9876543.21, 1, "-9,876,543.2"},
		{math.NaN(), 2, "n/a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in, tt.precision))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "45.7%", FormatPercent(0.4567))
	assert.Equal(t, "0.0%", FormatPercent(0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "18,248", FormatNumber(18248))
}
