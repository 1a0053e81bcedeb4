package units

import "strings"

// calorificValue is a net calorific value in kWh per cubic metre and per
// kilogram. Zero means no value on file for that basis.
type calorificValue struct {
	perM3 float64
	perKg float64
}

// Values follow the DEFRA conversion factor tables, rounded to the precision
// the product displays.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var calorificKWh = map[string]calorificValue{
	"diesel":      {perM3: 10_000, perKg: 11.8},
	"petrol":      {perM3: 9_100, perKg: 12.2},
	"natural_gas": {perM3: 10.55, perKg: 13.1},
	"lpg":         {perM3: 7_080, perKg: 13.1},
	"fuel_oil":    {perM3: 10_900, perKg: 11.3},
	"coal":        {perKg: 7.5},
	"biomass":     {perKg: 4.4},
}

// fuelKey folds labels such as "Natural gas" or "natural-gas" into table keys.
func fuelKey(fuel string) string {
	k := strings.ToLower(strings.TrimSpace(fuel))
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)
	return k
}

// IsKnownFuel reports whether a calorific value is on file for fuel.
func IsKnownFuel(fuel string) bool {
	_, ok := calorificKWh[fuelKey(fuel)]
	return ok
}

// FuelToMWh converts a fuel quantity to megawatt-hours.
//
// Energy units (kWh, GJ, ...) are converted directly and the fuel is ignored.
// Volume and mass units (anything ToCubicMetres or ToKg accepts) are
// normalised to m³ or kg and multiplied by the fuel's net calorific value; a fuel
// without a table entry returns ErrUnknownFuel and a unit the fuel has no
// value for returns ErrInvalidUnit.
func FuelToMWh(fuel string, value float64, unit string) (float64, error) {
	if IsEnergyUnit(unit) {
		return ToMWh(value, unit)
	}

	cv, ok := calorificKWh[fuelKey(fuel)]
	if !ok {
		if _, err := convert(value, 0, true); err != nil {
			return 0, err
		}
		return 0, ErrUnknownFuel
	}

	var factor float64
	if vf, isVolume := volumeFactor(unit); isVolume && cv.perM3 > 0 {
		factor, ok = vf*cv.perM3, true
	} else if mf, isMass := massFactor(unit); isMass && cv.perKg > 0 {
		factor, ok = mf*cv.perKg, true
	} else {
		ok = false
	}
	kwh, err := convert(value, factor, ok)
	if err != nil {
		return 0, err
	}
	return kwh / KWhPerMWh, nil
}
