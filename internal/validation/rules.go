package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/rshade/esgsync/internal/attachments"
	"github.com/rshade/esgsync/internal/emissions"
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// scopeMismatchTolerance is the relative gap between a typed scope total
// and its row-derived sum above which a warning is raised.
const scopeMismatchTolerance = 0.05

func idx(base string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", base, i, field)
}

// checkEnum reports a non-blank value that is not a member of set.
func checkEnum(r *Result, field string, set *enums.Set, raw string) {
	if strings.TrimSpace(raw) == "" || set.Contains(raw) {
		return
	}
	r.addError(field, "unknown %s %q", set.Name(), raw)
}

func checkEnums(r *Result, field string, set *enums.Set, raw []string) {
	for i, v := range raw {
		checkEnum(r, fmt.Sprintf("%s[%d]", field, i), set, v)
	}
}

func checkUnit(r *Result, field, kind, unit string, q *float64, ok func(string) bool) {
	if q == nil {
		return
	}
	if strings.TrimSpace(unit) == "" {
		r.addError(field, "unit is required when a quantity is entered")
		return
	}
	if !ok(unit) {
		r.addError(field, "%q is not a %s unit", unit, kind)
	}
}

func checkState(r *Result, s *wizard.State, mode Mode) {
	if id := strings.TrimSpace(s.CompanyID); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			r.addError("companyId", "must be a UUID")
		}
	} else if mode == ModeSubmit {
		r.addError("companyId", "is required")
	}

	year, hasYear := s.ReportingYear()
	if mode == ModeSubmit && !hasYear {
		r.addError("year", "reporting year is required")
	}

	if mode != ModeSubmit {
		return
	}
	if mapper.GovernanceIsEmpty(s.Governance) && mapper.SocialIsEmpty(s.Social) &&
		mapper.GHGIsEmpty(s.GHG) && mapper.ResourcesIsEmpty(s.Resources) &&
		mapper.WaterIsEmpty(s.Water) && mapper.BiodiversityIsEmpty(s.Biodiversity) &&
		mapper.WasteIsEmpty(s.Waste) {
		r.addError("state", "nothing to submit: every disclosure section is blank")
	}

	type sectionYear struct {
		field string
		year  *int
	}
	var years []sectionYear
	if s.GHG != nil {
		years = append(years, sectionYear{"ghg.year", s.GHG.Year})
	}
	if s.Resources != nil {
		years = append(years, sectionYear{"resources.year", s.Resources.Year})
	}
	if s.Water != nil {
		years = append(years, sectionYear{"water.year", s.Water.Year})
	}
	if s.Biodiversity != nil {
		years = append(years, sectionYear{"biodiversity.year", s.Biodiversity.Year})
	}
	if s.Waste != nil {
		years = append(years, sectionYear{"waste.year", s.Waste.Year})
	}
	for _, sy := range years {
		if hasYear && sy.year != nil && *sy.year != year {
			r.addWarning(sy.field, "%d differs from the reporting year %d", *sy.year, year)
		}
	}
}

func checkProfile(r *Result, p *wizard.Profile) {
	if p == nil {
		return
	}
	checkEnum(r, "profile.sector", enums.Sector, p.Sector)
	checkEnums(r, "profile.frameworks", enums.Framework, p.Frameworks)
	checkEnums(r, "profile.esgFocus", enums.ESGFocus, p.ESGFocus)
	if err := attachments.Check(attachments.RegistrationCertificate, p.RegistrationCertificate); err != nil {
		r.addError("profile.registrationCertificate", "%v", err)
	}
	if err := attachments.Check(attachments.PriorReport, p.PriorReport); err != nil {
		r.addError("profile.priorReport", "%v", err)
	}
}

func checkGHG(r *Result, g *wizard.GHGInventory) {
	if g == nil {
		return
	}
	checkEnum(r, "ghg.boundary", enums.Boundary, g.Boundary)
	checkEnum(r, "ghg.gwpVersion", enums.GWPVersion, g.GWPVersion)
	checkEnum(r, "ghg.efSource", enums.EmissionFactorSource, g.EFSource)

	if tag, ok := enums.Boundary.Normalize(g.Boundary); ok && tag == enums.BoundaryEquityShare && g.EquitySharePct == nil {
		r.addError("ghg.equitySharePct", "is required when the boundary is equity share")
	}

	for i, row := range g.Scope1Rows {
		checkEnum(r, idx("ghg.scope1Rows", i, "category"), enums.Scope1Category, row.Category)
		if cat, ok := enums.Scope1Category.Normalize(row.Category); ok && cat == "fugitive" && strings.TrimSpace(row.Refrigerant) == "" {
			r.addError(idx("ghg.scope1Rows", i, "refrigerant"), "is required for fugitive emissions")
		}
		if row.Quantity != nil && row.EFKgPerUnit == nil {
			r.addWarning(idx("ghg.scope1Rows", i, "efKgPerUnit"), "missing; the row contributes nothing to scope 1")
		}
	}
	for i, row := range g.Scope2Rows {
		checkEnum(r, idx("ghg.scope2Rows", i, "energyType"), enums.EnergyType, row.EnergyType)
		checkUnit(r, idx("ghg.scope2Rows", i, "unit"), "energy", row.Unit, row.Quantity, units.IsEnergyUnit)
		if row.Quantity != nil && row.SupplierEFKgPerKWh == nil {
			r.addWarning(idx("ghg.scope2Rows", i, "supplierEfKgPerKWh"), "missing; the row contributes nothing to scope 2")
		}
	}

	t := emissions.ComputeGHG(g)
	warnMismatch(r, "ghg.scope1", g.Scope1TCO2e, t.Scope1FromRows, len(g.Scope1Rows) > 0)
	warnMismatch(r, "ghg.scope2", g.Scope2TCO2e, t.Scope2FromRows, len(g.Scope2Rows) > 0)
}

func warnMismatch(r *Result, field string, explicit *float64, derived float64, hasRows bool) {
	if explicit == nil || !hasRows || derived == 0 {
		return
	}
	if math.Abs(*explicit-derived)/derived > scopeMismatchTolerance {
		r.addWarning(field, "entered total %s tCO2e differs from the activity rows (%s tCO2e); the entered total is used",
			units.FormatFloat(*explicit, 2), units.FormatFloat(derived, 2))
	}
}

func checkResources(r *Result, rc *wizard.ResourceConsumption) {
	if rc == nil {
		return
	}
	for i, row := range rc.Purchased {
		checkEnum(r, idx("resources.purchased", i, "energyType"), enums.EnergyType, row.EnergyType)
		checkUnit(r, idx("resources.purchased", i, "unit"), "energy", row.Unit, row.Quantity, units.IsEnergyUnit)
	}
	for i, row := range rc.SelfGenerated {
		checkEnum(r, idx("resources.selfGenerated", i, "source"), enums.RenewableSource, row.Source)
		checkUnit(r, idx("resources.selfGenerated", i, "unit"), "energy", row.Unit, row.Quantity, units.IsEnergyUnit)
	}
	for i, row := range rc.Sold {
		checkEnum(r, idx("resources.sold", i, "energyType"), enums.EnergyType, row.EnergyType)
		checkUnit(r, idx("resources.sold", i, "unit"), "energy", row.Unit, row.Quantity, units.IsEnergyUnit)
	}
	for i, row := range rc.Fuels {
		checkEnum(r, idx("resources.fuels", i, "fuel"), enums.Fuel, row.Fuel)
		if row.Quantity == nil || *row.Quantity < 0 {
			continue
		}
		if _, err := units.FuelToMWh(row.Fuel, *row.Quantity, row.Unit); err != nil {
			r.addError(idx("resources.fuels", i, "unit"), "cannot convert %s %q to MWh: %v", row.Fuel, row.Unit, err)
		}
	}
	if rc.Intensity != nil {
		checkEnum(r, "resources.intensity.denominator", enums.IntensityDenominator, rc.Intensity.Denominator)
		if rc.Intensity.Value != nil && strings.TrimSpace(rc.Intensity.Denominator) == "" {
			r.addError("resources.intensity.denominator", "is required when an intensity value is entered")
		}
	}

	e := emissions.ComputeEnergy(rc)
	if e.SoldMWh > e.SelfGeneratedMWh {
		r.addWarning("resources.sold", "energy sold (%s MWh) exceeds energy generated (%s MWh)",
			units.FormatFloat(e.SoldMWh, 2), units.FormatFloat(e.SelfGeneratedMWh, 2))
	}
}

func checkWater(r *Result, w *wizard.Water) {
	if w == nil {
		return
	}
	for i, row := range w.Withdrawals {
		checkEnum(r, idx("water.withdrawals", i, "source"), enums.WaterSource, row.Source)
		checkEnum(r, idx("water.withdrawals", i, "quality"), enums.WaterQuality, row.Quality)
		checkEnum(r, idx("water.withdrawals", i, "method"), enums.MeasurementMethod, row.Method)
		checkUnit(r, idx("water.withdrawals", i, "unit"), "volume", row.Unit, row.Quantity, units.IsVolumeUnit)
		checkPeriod(r, idx("water.withdrawals", i, "period"), row.Period)
	}
	for i, row := range w.Discharges {
		checkEnum(r, idx("water.discharges", i, "destination"), enums.DischargeDestination, row.Destination)
		checkEnum(r, idx("water.discharges", i, "treatment"), enums.TreatmentLevel, row.Treatment)
		checkUnit(r, idx("water.discharges", i, "unit"), "volume", row.Unit, row.Quantity, units.IsVolumeUnit)
		checkPeriod(r, idx("water.discharges", i, "period"), row.Period)
	}
	t := emissions.ComputeWater(w)
	if t.DischargeM3 > t.WithdrawalM3 {
		r.addWarning("water.discharges", "total discharge (%s m³) exceeds total withdrawal (%s m³)",
			units.FormatFloat(t.DischargeM3, 2), units.FormatFloat(t.WithdrawalM3, 2))
	}
}

func checkPeriod(r *Result, field string, p *wizard.Period) {
	if p == nil {
		return
	}
	if err := p.Validate(); err != nil {
		r.addError(field, "%v", err)
	}
}

func checkBiodiversity(r *Result, b *wizard.Biodiversity) {
	if b == nil {
		return
	}
	names := make(map[string]bool, len(b.Sites))
	for i, s := range b.Sites {
		checkEnum(r, idx("biodiversity.sites", i, "habitat"), enums.Habitat, s.Habitat)
		checkEnums(r, idx("biodiversity.sites", i, "designations"), enums.ProtectedDesignation, s.Designations)
		if (s.Latitude == nil) != (s.Longitude == nil) {
			r.addError(idx("biodiversity.sites", i, "longitude"), "latitude and longitude must be entered together")
		}
		if n := strings.TrimSpace(s.Name); n != "" {
			names[strings.ToLower(n)] = true
		}
	}
	for i, im := range b.Impacts {
		checkEnum(r, idx("biodiversity.impacts", i, "activity"), enums.ImpactActivity, im.Activity)
		checkEnum(r, idx("biodiversity.impacts", i, "receptor"), enums.Receptor, im.Receptor)
		checkEnum(r, idx("biodiversity.impacts", i, "proximity"), enums.Proximity, im.Proximity)
		if n := strings.TrimSpace(im.SiteName); n != "" && !names[strings.ToLower(n)] {
			r.addWarning(idx("biodiversity.impacts", i, "siteName"), "%q does not match any listed site", n)
		}
	}
}

func checkWaste(r *Result, w *wizard.Waste) {
	if w == nil {
		return
	}
	for i, row := range w.Rows {
		checkEnum(r, idx("waste.rows", i, "stream"), enums.WasteStream, row.Stream)
		checkEnum(r, idx("waste.rows", i, "hazardClass"), enums.HazardClass, row.HazardClass)
		checkEnum(r, idx("waste.rows", i, "physicalState"), enums.PhysicalState, row.PhysicalState)
		checkEnum(r, idx("waste.rows", i, "managementRoute"), enums.ManagementRoute, row.ManagementRoute)
		checkEnum(r, idx("waste.rows", i, "managementMethod"), enums.ManagementMethod, row.ManagementMethod)
		checkEnum(r, idx("waste.rows", i, "destination"), enums.WasteDestination, row.Destination)
		checkEnum(r, idx("waste.rows", i, "measurementMethod"), enums.MeasurementMethod, row.Method)
		checkUnit(r, idx("waste.rows", i, "unit"), "mass", row.Unit, row.Quantity, units.IsMassUnit)

		route, routeOK := enums.ManagementRoute.Normalize(row.ManagementRoute)
		method, methodOK := enums.ManagementMethod.Normalize(row.ManagementMethod)
		switch {
		case routeOK && methodOK && !enums.MethodAllowed(route, method):
			r.addError(idx("waste.rows", i, "managementMethod"), "%s is not allowed for route %s (allowed: %s)",
				enums.ManagementMethod.Label(method), enums.ManagementRoute.Label(route),
				strings.Join(enums.AllowedMethods(route), ", "))
		case methodOK && !routeOK && strings.TrimSpace(row.ManagementRoute) == "":
			r.addWarning(idx("waste.rows", i, "managementRoute"), "is blank; the method cannot be checked")
		}
	}
}

func checkGovernance(r *Result, g *wizard.Governance) {
	if g == nil {
		return
	}
	checkEnum(r, "governance.ownershipStructure", enums.OwnershipStructure, g.OwnershipStructure)
	for i, d := range g.Directors {
		checkEnum(r, idx("governance.directors", i, "role"), enums.DirectorRole, d.Role)
		checkEnum(r, idx("governance.directors", i, "gender"), enums.Gender, d.Gender)
		checkEnum(r, idx("governance.directors", i, "ageBand"), enums.AgeBand, d.AgeBand)
		checkEnums(r, idx("governance.directors", i, "committees"), enums.Committee, d.Committees)
	}
	for i, a := range g.Attendance {
		checkEnum(r, idx("governance.attendance", i, "committee"), enums.Committee, a.Committee)
		if a.MeetingsHeld != nil && a.MeetingsAttended != nil && *a.MeetingsAttended > *a.MeetingsHeld {
			r.addError(idx("governance.attendance", i, "meetingsAttended"),
				"%d exceeds meetings held (%d)", *a.MeetingsAttended, *a.MeetingsHeld)
		}
	}
	checkNotes(r, "governance.notes", g.Notes)
}

func checkSocial(r *Result, s *wizard.Social) {
	if s == nil {
		return
	}
	for i, w := range s.Workforce {
		checkEnum(r, idx("social.workforce", i, "contractType"), enums.ContractType, w.ContractType)
		checkEnum(r, idx("social.workforce", i, "employmentType"), enums.EmploymentType, w.EmploymentType)
		gender := sum(w.Female, w.Male, w.Other)
		age := sum(w.Under30, w.Age30To50, w.Over50)
		if gender > 0 && age > 0 && gender != age {
			r.addWarning(idx("social.workforce", i, "over50"),
				"age breakdown totals %d but gender breakdown totals %d", age, gender)
		}
	}
	if h := s.HealthSafety; h != nil && h.HoursWorked == nil &&
		(h.LostTimeInjuries != nil || h.RecordableIncidents != nil) {
		r.addWarning("social.healthSafety.hoursWorked", "is needed to compute incident rates")
	}
	checkNotes(r, "social.notes", s.Notes)
}

func sum(ps ...*int) int {
	var n int
	for _, p := range ps {
		if p != nil {
			n += *p
		}
	}
	return n
}

// checkNotes warns when a notes blob looks like JSON but does not parse,
// since the mapper then ignores it entirely.
func checkNotes(r *Result, field, notes string) {
	n := strings.TrimSpace(notes)
	if !strings.HasPrefix(n, "{") {
		return
	}
	if !jsonObject(n) {
		r.addWarning(field, "is not a valid JSON object and will be ignored")
	}
}
