package mapper

import (
	"github.com/rshade/esgsync/internal/emissions"
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// WasteRecordPayload is the body of POST .../environment/waste.
type WasteRecordPayload struct {
	Year          *int     `json:"year,omitempty"`
	TotalT        *float64 `json:"total_t,omitempty"`
	DivertedT     *float64 `json:"diverted_t,omitempty"`
	DisposedT     *float64 `json:"disposed_t,omitempty"`
	HazardousT    *float64 `json:"hazardous_t,omitempty"`
	DiversionRate *float64 `json:"diversion_rate,omitempty"`
}

// WasteBulkPayload is the body of POST .../waste/:wasteId/bulk.
type WasteBulkPayload struct {
	Rows []WasteRowPayload `json:"rows"`
}

// WasteRowPayload is one waste stream line in tonnes.
type WasteRowPayload struct {
	Stream            *string  `json:"stream,omitempty"`
	HazardClass       *string  `json:"hazard_class,omitempty"`
	PhysicalState     *string  `json:"physical_state,omitempty"`
	ManagementRoute   *string  `json:"management_route,omitempty"`
	ManagementMethod  *string  `json:"management_method,omitempty"`
	Destination       *string  `json:"destination,omitempty"`
	QuantityT         *float64 `json:"quantity_t,omitempty"`
	MeasurementMethod *string  `json:"measurement_method,omitempty"`
}

func wasteRowEmpty(r wizard.WasteRow) bool {
	return allBlank(r.Stream, r.HazardClass, r.PhysicalState, r.ManagementRoute,
		r.ManagementMethod, r.Destination, r.Method) && r.Quantity == nil
}

// WasteIsEmpty reports whether no waste row is filled in.
func WasteIsEmpty(w *wizard.Waste) bool {
	if w == nil {
		return true
	}
	for _, r := range w.Rows {
		if !wasteRowEmpty(r) {
			return false
		}
	}
	return true
}

// WasteRecord builds the waste record create body with tonnage roll-ups.
func WasteRecord(w *wizard.Waste, year *int) *WasteRecordPayload {
	if WasteIsEmpty(w) {
		return nil
	}
	p := &WasteRecordPayload{}
	if y, ok := resolve.First(resolve.Explicit(w.Year), resolve.Explicit(year)); ok {
		p.Year = &y
	}
	t := emissions.ComputeWaste(w)
	if t.TotalT > 0 {
		p.TotalT = finite(t.TotalT)
		p.DivertedT = finite(t.DivertedT)
		p.DisposedT = finite(t.DisposedT)
		p.HazardousT = finite(t.HazardousT)
		p.DiversionRate = finite(t.DiversionRate())
	}
	return p
}

// WasteBulk builds the waste rows body. A management method that the route
// does not allow is omitted; validation reports it separately.
func WasteBulk(w *wizard.Waste) *WasteBulkPayload {
	if WasteIsEmpty(w) {
		return nil
	}
	p := &WasteBulkPayload{}
	for _, r := range w.Rows {
		if wasteRowEmpty(r) {
			continue
		}
		row := WasteRowPayload{
			Stream:            tag(enums.WasteStream, r.Stream),
			HazardClass:       tag(enums.HazardClass, r.HazardClass),
			PhysicalState:     tag(enums.PhysicalState, r.PhysicalState),
			ManagementRoute:   tag(enums.ManagementRoute, r.ManagementRoute),
			Destination:       tag(enums.WasteDestination, r.Destination),
			MeasurementMethod: tag(enums.MeasurementMethod, r.Method),
		}
		method := tag(enums.ManagementMethod, r.ManagementMethod)
		if method != nil && (row.ManagementRoute == nil || enums.MethodAllowed(*row.ManagementRoute, *method)) {
			row.ManagementMethod = method
		}
		if r.Quantity != nil {
			if tonnes, err := units.ToTonnes(*r.Quantity, r.Unit); err == nil {
				row.QuantityT = finite(tonnes)
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}
