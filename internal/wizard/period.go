package wizard

import (
	"errors"
	"fmt"
	"time"
)

// Period kinds.
const (
	PeriodMonth = "month"
	PeriodRange = "range"
)

// Period date layouts.
const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// Period errors.
var (
	ErrPeriodKind     = errors.New("period kind must be 'month' or 'range'")
	ErrPeriodMonth    = errors.New("month period requires month in YYYY-MM form")
	ErrPeriodRange    = errors.New("range period requires from and to dates in YYYY-MM-DD form")
	ErrPeriodReversed = errors.New("period start is after its end")
)

// Period is a tagged union: a single month, or a date range.
type Period struct {
	Kind  string `json:"kind"`
	Month string `json:"month,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// MonthPeriod builds a single-month Period.
func MonthPeriod(month string) *Period {
	return &Period{Kind: PeriodMonth, Month: month}
}

// RangePeriod builds a date-range Period.
func RangePeriod(from, to string) *Period {
	return &Period{Kind: PeriodRange, From: from, To: to}
}

// Validate checks the union shape: exactly the fields for its kind, parseable, ordered.
func (p *Period) Validate() error {
	switch p.Kind {
	case PeriodMonth:
		if p.From != "" || p.To != "" {
			return fmt.Errorf("%w: from/to must be empty", ErrPeriodMonth)
		}
		if _, err := time.Parse(MonthLayout, p.Month); err != nil {
			return fmt.Errorf("%w: got %q", ErrPeriodMonth, p.Month)
		}
		return nil
	case PeriodRange:
		if p.Month != "" {
			return fmt.Errorf("%w: month must be empty", ErrPeriodRange)
		}
		from, err := time.Parse(DateLayout, p.From)
		if err != nil {
			return fmt.Errorf("%w: from %q", ErrPeriodRange, p.From)
		}
		to, err := time.Parse(DateLayout, p.To)
		if err != nil {
			return fmt.Errorf("%w: to %q", ErrPeriodRange, p.To)
		}
		if from.After(to) {
			return fmt.Errorf("%w: %s > %s", ErrPeriodReversed, p.From, p.To)
		}
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrPeriodKind, p.Kind)
	}
}

// Bounds returns the first and last day covered by the period.
func (p *Period) Bounds() (time.Time, time.Time, error) {
	if err := p.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if p.Kind == PeriodMonth {
		start, _ := time.Parse(MonthLayout, p.Month)
		return start, start.AddDate(0, 1, -1), nil
	}
	from, _ := time.Parse(DateLayout, p.From)
	to, _ := time.Parse(DateLayout, p.To)
	return from, to, nil
}
