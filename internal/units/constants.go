package units

// Energy conversion factors to kilowatt-hours.
const (
	// WhToKWh converts watt-hours to kilowatt-hours.
	WhToKWh = 0.001

	// KWhToKWh is the identity conversion for kilowatt-hours.
	KWhToKWh = 1.0

	// MWhToKWh converts megawatt-hours to kilowatt-hours.
	MWhToKWh = 1000.0

	// GWhToKWh converts gigawatt-hours to kilowatt-hours.
	GWhToKWh = 1_000_000.0

	// MJToKWh converts megajoules to kilowatt-hours.
	MJToKWh = 0.27778

	// GJToKWh converts gigajoules to kilowatt-hours.
	// The product uses the rounded factor 277.78, so 3.6 GJ is 1.000008 MWh.
	GJToKWh = 277.78

	// TJToKWh converts terajoules to kilowatt-hours.
	TJToKWh = 277_780.0

	// KWhPerMWh is the divisor used to express kWh totals in MWh.
	KWhPerMWh = 1000.0
)

// Mass conversion factors to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonnesToKg converts metric tonnes to kilograms.
	TonnesToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592

	// KgPerTonne is the divisor used to express kg totals in tonnes.
	KgPerTonne = 1000.0
)

// Volume conversion factors to cubic metres.
const (
	// MillilitresToM3 converts millilitres to cubic metres.
	MillilitresToM3 = 0.000001

	// LitresToM3 converts litres to cubic metres.
	LitresToM3 = 0.001

	// KilolitresToM3 converts kilolitres to cubic metres.
	KilolitresToM3 = 1.0

	// M3ToM3 is the identity conversion for cubic metres.
	M3ToM3 = 1.0

	// MegalitresToM3 converts megalitres to cubic metres.
	MegalitresToM3 = 1000.0

	// USGallonsToM3 converts US gallons to cubic metres.
	USGallonsToM3 = 0.003785411784
)
