package enums

// Boundary tags.
const (
	BoundaryOperationalControl = "operational_control"
	BoundaryFinancialControl   = "financial_control"
	BoundaryEquityShare        = "equity_share"
)

// Management route tags.
const (
	RouteDiverted = "diverted"
	RouteDisposal = "disposal"
)

// Enum sets used by the mappers and validators.
//
//nolint:gochecknoglobals // Compile-time constant lookup tables.
var (
	Boundary = NewSet("boundary",
		Entry{Tag: BoundaryOperationalControl, Label: "Operational control"},
		Entry{Tag: BoundaryFinancialControl, Label: "Financial control"},
		Entry{Tag: BoundaryEquityShare, Label: "Equity share", Aliases: []string{"equity"}},
	)

	GWPVersion = NewSet("gwp_version",
		Entry{Tag: "AR4", Label: "IPCC AR4", Aliases: []string{"fourth assessment report"}},
		Entry{Tag: "AR5", Label: "IPCC AR5", Aliases: []string{"fifth assessment report"}},
		Entry{Tag: "AR6", Label: "IPCC AR6", Aliases: []string{"sixth assessment report"}},
	)

	EmissionFactorSource = NewSet("ef_source",
		Entry{Tag: "defra", Label: "DEFRA", Aliases: []string{"uk government ghg conversion factors", "desnz"}},
		Entry{Tag: "epa", Label: "US EPA", Aliases: []string{"epa"}},
		Entry{Tag: "ipcc", Label: "IPCC"},
		Entry{Tag: "iea", Label: "IEA"},
		Entry{Tag: "ecoinvent", Label: "ecoinvent"},
		Entry{Tag: "supplier", Label: "Supplier-specific"},
		Entry{Tag: "custom", Label: "Custom"},
	)

	Scope1Category = NewSet("scope1_category",
		Entry{Tag: "stationary", Label: "Stationary combustion"},
		Entry{Tag: "mobile", Label: "Mobile combustion"},
		Entry{Tag: "fugitive", Label: "Fugitive emissions"},
		Entry{Tag: "process", Label: "Process emissions"},
	)

	EnergyType = NewSet("energy_type",
		Entry{Tag: "electricity", Label: "Electricity"},
		Entry{Tag: "heat", Label: "Heat", Aliases: []string{"heating", "district heating"}},
		Entry{Tag: "steam", Label: "Steam"},
		Entry{Tag: "cooling", Label: "Cooling", Aliases: []string{"district cooling"}},
	)

	RenewableSource = NewSet("renewable_source",
		Entry{Tag: "solar", Label: "Solar PV", Aliases: []string{"solar pv", "pv"}},
		Entry{Tag: "wind", Label: "Wind"},
		Entry{Tag: "hydro", Label: "Hydro"},
		Entry{Tag: "biomass", Label: "Biomass"},
		Entry{Tag: "geothermal", Label: "Geothermal"},
		Entry{Tag: "chp", Label: "Combined heat and power", Aliases: []string{"cogeneration"}},
		Entry{Tag: "other", Label: "Other"},
	)

	Fuel = NewSet("fuel",
		Entry{Tag: "diesel", Label: "Diesel", Aliases: []string{"gas oil"}},
		Entry{Tag: "petrol", Label: "Petrol", Aliases: []string{"gasoline"}},
		Entry{Tag: "natural_gas", Label: "Natural gas", Aliases: []string{"cng"}},
		Entry{Tag: "lpg", Label: "LPG", Aliases: []string{"propane"}},
		Entry{Tag: "fuel_oil", Label: "Fuel oil", Aliases: []string{"heating oil"}},
		Entry{Tag: "coal", Label: "Coal"},
		Entry{Tag: "biomass", Label: "Biomass", Aliases: []string{"wood pellets"}},
	)

	IntensityDenominator = NewSet("intensity_denominator",
		Entry{Tag: "fte", Label: "Per FTE", Aliases: []string{"employee", "per employee"}},
		Entry{Tag: "revenue_million", Label: "Per million revenue", Aliases: []string{"revenue"}},
		Entry{Tag: "floor_area_m2", Label: "Per m² floor area", Aliases: []string{"floor area"}},
		Entry{Tag: "production_unit", Label: "Per production unit", Aliases: []string{"unit produced"}},
	)

	WaterSource = NewSet("water_source",
		Entry{Tag: "surface_water", Label: "Surface water"},
		Entry{Tag: "groundwater", Label: "Groundwater", Aliases: []string{"ground water"}},
		Entry{Tag: "seawater", Label: "Seawater", Aliases: []string{"sea water"}},
		Entry{Tag: "produced_water", Label: "Produced water"},
		Entry{Tag: "third_party", Label: "Third-party water", Aliases: []string{"municipal", "mains"}},
		Entry{Tag: "rainwater", Label: "Rainwater harvesting", Aliases: []string{"rainwater"}},
	)

	WaterQuality = NewSet("water_quality",
		Entry{Tag: "freshwater", Label: "Freshwater (≤1,000 mg/L TDS)", Aliases: []string{"fresh"}},
		Entry{Tag: "other_water", Label: "Other water (>1,000 mg/L TDS)", Aliases: []string{"other"}},
	)

	MeasurementMethod = NewSet("measurement_method",
		Entry{Tag: "metered", Label: "Metered", Aliases: []string{"measured"}},
		Entry{Tag: "calculated", Label: "Calculated"},
		Entry{Tag: "estimated", Label: "Estimated"},
		Entry{Tag: "invoiced", Label: "From invoices", Aliases: []string{"invoice"}},
	)

	DischargeDestination = NewSet("discharge_destination",
		Entry{Tag: "surface_water", Label: "Surface water"},
		Entry{Tag: "groundwater", Label: "Groundwater"},
		Entry{Tag: "seawater", Label: "Seawater"},
		Entry{Tag: "third_party", Label: "Third-party (sewer)", Aliases: []string{"sewer", "municipal"}},
	)

	TreatmentLevel = NewSet("treatment_level",
		Entry{Tag: "none", Label: "No treatment", Aliases: []string{"untreated"}},
		Entry{Tag: "primary", Label: "Primary"},
		Entry{Tag: "secondary", Label: "Secondary"},
		Entry{Tag: "tertiary", Label: "Tertiary"},
	)

	Habitat = NewSet("habitat",
		Entry{Tag: "forest", Label: "Forest"},
		Entry{Tag: "grassland", Label: "Grassland"},
		Entry{Tag: "wetland", Label: "Wetland"},
		Entry{Tag: "freshwater", Label: "Rivers and lakes", Aliases: []string{"freshwater"}},
		Entry{Tag: "marine", Label: "Marine"},
		Entry{Tag: "coastal", Label: "Coastal"},
		Entry{Tag: "desert", Label: "Desert", Aliases: []string{"arid"}},
		Entry{Tag: "agricultural", Label: "Agricultural land", Aliases: []string{"farmland"}},
		Entry{Tag: "urban", Label: "Urban"},
	)

	ProtectedDesignation = NewSet("protected_designation",
		Entry{Tag: "iucn", Label: "IUCN protected area", Aliases: []string{"iucn i-vi"}},
		Entry{Tag: "natura_2000", Label: "Natura 2000"},
		Entry{Tag: "ramsar", Label: "Ramsar site"},
		Entry{Tag: "unesco_whs", Label: "UNESCO World Heritage Site", Aliases: []string{"world heritage"}},
		Entry{Tag: "kba", Label: "Key Biodiversity Area"},
		Entry{Tag: "national_park", Label: "National park"},
	)

	ImpactActivity = NewSet("impact_activity",
		Entry{Tag: "land_use_change", Label: "Land use change", Aliases: []string{"land clearing"}},
		Entry{Tag: "pollution", Label: "Pollution"},
		Entry{Tag: "water_extraction", Label: "Water extraction"},
		Entry{Tag: "invasive_species", Label: "Invasive species"},
		Entry{Tag: "noise_light", Label: "Noise and light"},
		Entry{Tag: "resource_extraction", Label: "Resource extraction"},
	)

	Receptor = NewSet("receptor",
		Entry{Tag: "species", Label: "Species"},
		Entry{Tag: "habitat", Label: "Habitat"},
		Entry{Tag: "ecosystem_services", Label: "Ecosystem services"},
		Entry{Tag: "community", Label: "Local community"},
	)

	Proximity = NewSet("proximity",
		Entry{Tag: "inside", Label: "Inside protected area", Aliases: []string{"within"}},
		Entry{Tag: "adjacent", Label: "Adjacent"},
		Entry{Tag: "near", Label: "Within 5 km", Aliases: []string{"nearby"}},
		Entry{Tag: "distant", Label: "More than 5 km", Aliases: []string{"far"}},
	)

	WasteStream = NewSet("waste_stream",
		Entry{Tag: "general", Label: "General waste", Aliases: []string{"municipal solid waste"}},
		Entry{Tag: "packaging", Label: "Packaging"},
		Entry{Tag: "organic", Label: "Organic / food waste", Aliases: []string{"food", "food waste"}},
		Entry{Tag: "paper", Label: "Paper and cardboard", Aliases: []string{"cardboard"}},
		Entry{Tag: "plastic", Label: "Plastic"},
		Entry{Tag: "metal", Label: "Metal"},
		Entry{Tag: "e_waste", Label: "Electronic waste", Aliases: []string{"weee", "ewaste"}},
		Entry{Tag: "construction", Label: "Construction and demolition"},
		Entry{Tag: "chemical", Label: "Chemical"},
		Entry{Tag: "medical", Label: "Medical"},
		Entry{Tag: "other", Label: "Other"},
	)

	HazardClass = NewSet("hazard_class",
		Entry{Tag: "hazardous", Label: "Hazardous"},
		Entry{Tag: "non_hazardous", Label: "Non-hazardous"},
	)

	PhysicalState = NewSet("physical_state",
		Entry{Tag: "solid", Label: "Solid"},
		Entry{Tag: "liquid", Label: "Liquid"},
		Entry{Tag: "sludge", Label: "Sludge"},
		Entry{Tag: "gas", Label: "Gas"},
	)

	ManagementRoute = NewSet("management_route",
		Entry{Tag: RouteDiverted, Label: "Diverted from disposal", Aliases: []string{"diversion"}},
		Entry{Tag: RouteDisposal, Label: "Directed to disposal", Aliases: []string{"disposed"}},
	)

	ManagementMethod = NewSet("management_method",
		Entry{Tag: "reuse", Label: "Preparation for reuse", Aliases: []string{"reused"}},
		Entry{Tag: "recycling", Label: "Recycling", Aliases: []string{"recycled"}},
		Entry{Tag: "composting", Label: "Composting"},
		Entry{Tag: "anaerobic_digestion", Label: "Anaerobic digestion"},
		Entry{Tag: "other_recovery", Label: "Other recovery operations"},
		Entry{Tag: "incineration_energy_recovery", Label: "Incineration with energy recovery"},
		Entry{Tag: "incineration", Label: "Incineration without energy recovery"},
		Entry{Tag: "landfill", Label: "Landfilling", Aliases: []string{"landfilled"}},
		Entry{Tag: "other_disposal", Label: "Other disposal operations"},
	)

	WasteDestination = NewSet("waste_destination",
		Entry{Tag: "onsite", Label: "Onsite", Aliases: []string{"on site"}},
		Entry{Tag: "offsite", Label: "Offsite", Aliases: []string{"off site"}},
	)

	OwnershipStructure = NewSet("ownership_structure",
		Entry{Tag: "listed", Label: "Publicly listed", Aliases: []string{"public"}},
		Entry{Tag: "private", Label: "Privately held"},
		Entry{Tag: "state_owned", Label: "State-owned"},
		Entry{Tag: "family_owned", Label: "Family-owned"},
		Entry{Tag: "cooperative", Label: "Cooperative"},
		Entry{Tag: "subsidiary", Label: "Subsidiary of a group"},
	)

	DirectorRole = NewSet("director_role",
		Entry{Tag: "chair", Label: "Chair", Aliases: []string{"chairman", "chairperson"}},
		Entry{Tag: "ceo", Label: "CEO", Aliases: []string{"chief executive"}},
		Entry{Tag: "executive", Label: "Executive director"},
		Entry{Tag: "non_executive", Label: "Non-executive director", Aliases: []string{"ned"}},
		Entry{Tag: "lead_independent", Label: "Lead independent director"},
	)

	AgeBand = NewSet("age_band",
		Entry{Tag: "under_30", Label: "Under 30", Aliases: []string{"<30"}},
		Entry{Tag: "30_50", Label: "30-50", Aliases: []string{"30 to 50"}},
		Entry{Tag: "over_50", Label: "Over 50", Aliases: []string{">50"}},
	)

	Committee = NewSet("committee",
		Entry{Tag: "audit", Label: "Audit"},
		Entry{Tag: "remuneration", Label: "Remuneration", Aliases: []string{"compensation"}},
		Entry{Tag: "nomination", Label: "Nomination"},
		Entry{Tag: "sustainability", Label: "Sustainability / ESG", Aliases: []string{"esg"}},
		Entry{Tag: "risk", Label: "Risk"},
	)

	Gender = NewSet("gender",
		Entry{Tag: "female", Label: "Female", Aliases: []string{"f", "woman"}},
		Entry{Tag: "male", Label: "Male", Aliases: []string{"m", "man"}},
		Entry{Tag: "other", Label: "Other / undisclosed", Aliases: []string{"undisclosed", "non-binary"}},
	)

	ContractType = NewSet("contract_type",
		Entry{Tag: "permanent", Label: "Permanent"},
		Entry{Tag: "temporary", Label: "Temporary", Aliases: []string{"fixed term"}},
	)

	EmploymentType = NewSet("employment_type",
		Entry{Tag: "full_time", Label: "Full-time"},
		Entry{Tag: "part_time", Label: "Part-time"},
	)

	Framework = NewSet("framework",
		Entry{Tag: "gri", Label: "GRI"},
		Entry{Tag: "sasb", Label: "SASB"},
		Entry{Tag: "tcfd", Label: "TCFD"},
		Entry{Tag: "esrs", Label: "CSRD / ESRS", Aliases: []string{"csrd"}},
		Entry{Tag: "issb", Label: "ISSB (IFRS S1/S2)", Aliases: []string{"ifrs s2"}},
		Entry{Tag: "cdp", Label: "CDP"},
	)

	Sector = NewSet("sector",
		Entry{Tag: "energy", Label: "Energy"},
		Entry{Tag: "manufacturing", Label: "Manufacturing"},
		Entry{Tag: "agriculture", Label: "Agriculture"},
		Entry{Tag: "technology", Label: "Technology", Aliases: []string{"tech", "software"}},
		Entry{Tag: "financial_services", Label: "Financial services", Aliases: []string{"finance"}},
		Entry{Tag: "real_estate", Label: "Real estate"},
		Entry{Tag: "retail", Label: "Retail"},
		Entry{Tag: "healthcare", Label: "Healthcare"},
		Entry{Tag: "transport", Label: "Transport and logistics", Aliases: []string{"logistics"}},
		Entry{Tag: "construction", Label: "Construction"},
	)

	ESGFocus = NewSet("esg_focus",
		Entry{Tag: "climate", Label: "Climate"},
		Entry{Tag: "water", Label: "Water"},
		Entry{Tag: "biodiversity", Label: "Biodiversity", Aliases: []string{"nature"}},
		Entry{Tag: "circularity", Label: "Circular economy", Aliases: []string{"waste"}},
		Entry{Tag: "social", Label: "Social impact"},
		Entry{Tag: "governance", Label: "Governance"},
	)
)

// allowedMethods is the per-route management-method allow-list (GRI 306-4/306-5).
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var allowedMethods = map[string][]string{
	RouteDiverted: {"reuse", "recycling", "composting", "anaerobic_digestion", "other_recovery"},
	RouteDisposal: {"incineration_energy_recovery", "incineration", "landfill", "other_disposal"},
}

// AllowedMethods returns the management methods permitted for route.
// The route is normalized first; an unknown route returns nil.
func AllowedMethods(route string) []string {
	tag, ok := ManagementRoute.Normalize(route)
	if !ok {
		return nil
	}
	methods := allowedMethods[tag]
	out := make([]string, len(methods))
	copy(out, methods)
	return out
}

// MethodAllowed reports whether method is permitted for route.
// Both values are normalized; unknown values are never allowed.
func MethodAllowed(route, method string) bool {
	m, ok := ManagementMethod.Normalize(method)
	if !ok {
		return false
	}
	for _, allowed := range AllowedMethods(route) {
		if allowed == m {
			return true
		}
	}
	return false
}
