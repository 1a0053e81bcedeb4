package mapper

import (
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// WaterRecordPayload is the body of POST /companies/:id/environment/water.
type WaterRecordPayload struct {
	Year *int `json:"year,omitempty"`
	// SiteID is nullable on the backend and always sent.
	SiteID            *string `json:"site_id"`
	WaterStressedArea bool    `json:"water_stressed_area,omitempty"`
}

// WaterBulkPayload is the body of POST .../water/:waterId/bulk.
type WaterBulkPayload struct {
	Withdrawals []WithdrawalPayload `json:"withdrawals,omitempty"`
	Discharges  []DischargePayload  `json:"discharges,omitempty"`
}

// PeriodPayload mirrors the month-or-range union.
type PeriodPayload struct {
	Kind  string  `json:"kind"`
	Month *string `json:"month,omitempty"`
	From  *string `json:"from,omitempty"`
	To    *string `json:"to,omitempty"`
}

// WithdrawalPayload is one withdrawal line in cubic metres.
type WithdrawalPayload struct {
	Source     *string        `json:"source,omitempty"`
	Quality    *string        `json:"quality,omitempty"`
	QuantityM3 *float64       `json:"quantity_m3,omitempty"`
	Method     *string        `json:"measurement_method,omitempty"`
	Period     *PeriodPayload `json:"period,omitempty"`
}

// DischargePayload is one discharge line in cubic metres.
type DischargePayload struct {
	Destination *string        `json:"destination,omitempty"`
	Treatment   *string        `json:"treatment_level,omitempty"`
	Reused      bool           `json:"reused,omitempty"`
	QuantityM3  *float64       `json:"quantity_m3,omitempty"`
	Period      *PeriodPayload `json:"period,omitempty"`
}

func withdrawalEmpty(r wizard.WithdrawalRow) bool {
	return allBlank(r.Source, r.Quality, r.Method) && r.Quantity == nil
}

func dischargeEmpty(r wizard.DischargeRow) bool {
	return allBlank(r.Destination, r.Treatment) && r.Quantity == nil && !r.Reused
}

// WaterIsEmpty reports whether no withdrawal or discharge line is filled in.
// A site id alone does not make a water record.
func WaterIsEmpty(w *wizard.Water) bool {
	if w == nil {
		return true
	}
	for _, r := range w.Withdrawals {
		if !withdrawalEmpty(r) {
			return false
		}
	}
	for _, r := range w.Discharges {
		if !dischargeEmpty(r) {
			return false
		}
	}
	return true
}

// WaterRecord builds the water record create body.
func WaterRecord(w *wizard.Water, year *int) *WaterRecordPayload {
	if WaterIsEmpty(w) {
		return nil
	}
	p := &WaterRecordPayload{SiteID: text(w.SiteID), WaterStressedArea: w.WaterStress}
	if y, ok := resolve.First(resolve.Explicit(w.Year), resolve.Explicit(year)); ok {
		p.Year = &y
	}
	return p
}

// WaterBulk builds the withdrawal and discharge rows body.
func WaterBulk(w *wizard.Water) *WaterBulkPayload {
	if WaterIsEmpty(w) {
		return nil
	}
	p := &WaterBulkPayload{}
	for _, r := range w.Withdrawals {
		if withdrawalEmpty(r) {
			continue
		}
		p.Withdrawals = append(p.Withdrawals, WithdrawalPayload{
			Source:     tag(enums.WaterSource, r.Source),
			Quality:    tag(enums.WaterQuality, r.Quality),
			QuantityM3: cubicMetres(r.Quantity, r.Unit),
			Method:     tag(enums.MeasurementMethod, r.Method),
			Period:     period(r.Period),
		})
	}
	for _, r := range w.Discharges {
		if dischargeEmpty(r) {
			continue
		}
		p.Discharges = append(p.Discharges, DischargePayload{
			Destination: tag(enums.DischargeDestination, r.Destination),
			Treatment:   tag(enums.TreatmentLevel, r.Treatment),
			Reused:      r.Reused,
			QuantityM3:  cubicMetres(r.Quantity, r.Unit),
			Period:      period(r.Period),
		})
	}
	return p
}

// period drops a malformed union rather than sending half of it.
func period(p *wizard.Period) *PeriodPayload {
	if p == nil || p.Validate() != nil {
		return nil
	}
	if p.Kind == wizard.PeriodMonth {
		return &PeriodPayload{Kind: p.Kind, Month: ptr(p.Month)}
	}
	return &PeriodPayload{Kind: p.Kind, From: ptr(p.From), To: ptr(p.To)}
}

func cubicMetres(q *float64, unit string) *float64 {
	if q == nil {
		return nil
	}
	m3, err := units.ToCubicMetres(*q, unit)
	if err != nil {
		return nil
	}
	return finite(m3)
}
