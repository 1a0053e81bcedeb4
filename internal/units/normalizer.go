package units

import (
	"math"
	"strings"
)

// canonicalUnit folds a user-typed unit string into the lookup key used by the
// factor tables: trimmed, lower-cased, with m³ and m^3 spelled m3.
func canonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.ReplaceAll(u, "³", "3")
	u = strings.ReplaceAll(u, "^3", "3")
	u = strings.ReplaceAll(u, " ", "")
	return u
}

func energyFactor(unit string) (float64, bool) {
	switch canonicalUnit(unit) {
	case "wh":
		return WhToKWh, true
	case "kwh":
		return KWhToKWh, true
	case "mwh":
		return MWhToKWh, true
	case "gwh":
		return GWhToKWh, true
	case "mj":
		return MJToKWh, true
	case "gj":
		return GJToKWh, true
	case "tj":
		return TJToKWh, true
	default:
		return 0, false
	}
}

func massFactor(unit string) (float64, bool) {
	switch canonicalUnit(unit) {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t", "tonne", "tonnes":
		return TonnesToKg, true
	case "lb", "lbs":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// volumeFactor treats the prefix case of mL and ML as significant. Lower-case
// "ml" could be either and is rejected.
func volumeFactor(unit string) (float64, bool) {
	switch strings.TrimSpace(unit) {
	case "mL":
		return MillilitresToM3, true
	case "ML":
		return MegalitresToM3, true
	}
	switch canonicalUnit(unit) {
	case "l", "litre", "litres", "liter", "liters":
		return LitresToM3, true
	case "millilitre", "millilitres", "milliliter", "milliliters":
		return MillilitresToM3, true
	case "kl":
		return KilolitresToM3, true
	case "m3":
		return M3ToM3, true
	case "megalitre", "megalitres", "megaliter", "megaliters":
		return MegalitresToM3, true
	case "gal", "gallon", "gallons":
		return USGallonsToM3, true
	default:
		return 0, false
	}
}

// convert applies factor to value with the shared NaN, sign and overflow checks.
func convert(value float64, factor float64, ok bool) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	if !ok {
		return 0, ErrInvalidUnit
	}
	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// ToKWh converts an energy quantity to kilowatt-hours.
// Recognised units: Wh, kWh, MWh, GWh, MJ, GJ, TJ (case-insensitive).
func ToKWh(value float64, unit string) (float64, error) {
	f, ok := energyFactor(unit)
	return convert(value, f, ok)
}

// ToMWh converts an energy quantity to megawatt-hours.
func ToMWh(value float64, unit string) (float64, error) {
	kwh, err := ToKWh(value, unit)
	if err != nil {
		return 0, err
	}
	return kwh / KWhPerMWh, nil
}

// ToKg converts a mass quantity to kilograms.
func ToKg(value float64, unit string) (float64, error) {
	f, ok := massFactor(unit)
	return convert(value, f, ok)
}

// ToTonnes converts a mass quantity to metric tonnes.
// Volume units are rejected with ErrInvalidUnit: there is no density on file.
func ToTonnes(value float64, unit string) (float64, error) {
	kg, err := ToKg(value, unit)
	if err != nil {
		return 0, err
	}
	return KgToTonnes(kg), nil
}

// KgToTonnes expresses a kilogram amount in tonnes.
func KgToTonnes(kg float64) float64 {
	return kg / KgPerTonne
}

// ToCubicMetres converts a volume quantity to cubic metres.
// Recognised units: mL, L, kL, m³, ML, gal. The ambiguous "ml" is rejected.
func ToCubicMetres(value float64, unit string) (float64, error) {
	f, ok := volumeFactor(unit)
	return convert(value, f, ok)
}

// IsEnergyUnit reports whether unit is a recognised energy unit.
func IsEnergyUnit(unit string) bool {
	_, ok := energyFactor(unit)
	return ok
}

// IsMassUnit reports whether unit is a recognised mass unit.
func IsMassUnit(unit string) bool {
	_, ok := massFactor(unit)
	return ok
}

// IsVolumeUnit reports whether unit is a recognised volume unit.
func IsVolumeUnit(unit string) bool {
	_, ok := volumeFactor(unit)
	return ok
}
