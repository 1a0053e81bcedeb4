package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		period  *Period
		wantErr error
	}{
		{name: "month", period: MonthPeriod("2024-03")},
		{name: "range", period: RangePeriod("2024-01-01", "2024-12-31")},
		{name: "single day range", period: RangePeriod("2024-05-05", "2024-05-05")},
		{name: "bad month", period: MonthPeriod("2024-13"), wantErr: ErrPeriodMonth},
		{name: "month with range fields", period: &Period{Kind: PeriodMonth, Month: "2024-01", From: "2024-01-01"}, wantErr: ErrPeriodMonth},
		{name: "range with month", period: &Period{Kind: PeriodRange, Month: "2024-01", From: "2024-01-01", To: "2024-01-31"}, wantErr: ErrPeriodRange},
		{name: "range missing to", period: RangePeriod("2024-01-01", ""), wantErr: ErrPeriodRange},
		{name: "reversed range", period: RangePeriod("2024-06-01", "2024-01-01"), wantErr: ErrPeriodReversed},
		{name: "unknown kind", period: &Period{Kind: "quarter"}, wantErr: ErrPeriodKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	from, to, err := MonthPeriod("2024-02").Bounds()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)

	_, _, err = (&Period{Kind: "x"}).Bounds()
	assert.ErrorIs(t, err, ErrPeriodKind)
}
