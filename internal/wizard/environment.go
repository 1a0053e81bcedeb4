package wizard

// GHGInventory is the greenhouse-gas inventory step.
type GHGInventory struct {
	Year *int `json:"year,omitempty"`

	// Scope totals typed directly by the user, in tCO2e.
	Scope1TCO2e *float64 `json:"scope1,omitempty"`
	Scope2TCO2e *float64 `json:"scope2,omitempty"`
	Scope3TCO2e *float64 `json:"scope3,omitempty"`

	Boundary        string   `json:"boundary,omitempty"`
	EquitySharePct  *float64 `json:"equitySharePct,omitempty"`
	GWPVersion      string   `json:"gwpVersion,omitempty"`
	EFSource        string   `json:"efSource,omitempty"`
	BaseYear        *int     `json:"baseYear,omitempty"`
	MethodologyNote string   `json:"methodologyNote,omitempty"`

	Scope1Rows []Scope1Row `json:"scope1Rows,omitempty"`
	Scope2Rows []Scope2Row `json:"scope2Rows,omitempty"`
}

// Scope1Row is one direct-emission activity line.
type Scope1Row struct {
	Category     string   `json:"category,omitempty"`
	ActivityType string   `json:"activityType,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	EFKgPerUnit  *float64 `json:"efKgPerUnit,omitempty"`
	Refrigerant  string   `json:"refrigerant,omitempty"`
}

// Scope2Row is one purchased-energy line.
type Scope2Row struct {
	EnergyType         string   `json:"energyType,omitempty"`
	Quantity           *float64 `json:"quantity,omitempty"`
	Unit               string   `json:"unit,omitempty"`
	SupplierEFKgPerKWh *float64 `json:"supplierEfKgPerKWh,omitempty"`
	HasREC             bool     `json:"hasRec,omitempty"`
	HasPPA             bool     `json:"hasPpa,omitempty"`
	GreenTariff        bool     `json:"greenTariff,omitempty"`
}

// ResourceConsumption is the energy and resource step.
type ResourceConsumption struct {
	Year *int `json:"year,omitempty"`

	Purchased     []PurchasedEnergyRow `json:"purchased,omitempty"`
	SelfGenerated []SelfGeneratedRow   `json:"selfGenerated,omitempty"`
	Fuels         []FuelRow            `json:"fuels,omitempty"`
	Sold          []EnergySoldRow      `json:"sold,omitempty"`
	Intensity     *Intensity           `json:"intensity,omitempty"`
}

// PurchasedEnergyRow is energy bought from the grid or a supplier.
type PurchasedEnergyRow struct {
	EnergyType string   `json:"energyType,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Renewable  bool     `json:"renewable,omitempty"`
}

// SelfGeneratedRow is energy produced on site.
type SelfGeneratedRow struct {
	Source    string   `json:"source,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Renewable bool     `json:"renewable,omitempty"`
}

// FuelRow is fuel combusted for energy.
type FuelRow struct {
	Fuel     string   `json:"fuel,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// EnergySoldRow is self-generated energy exported to the grid or sold.
type EnergySoldRow struct {
	EnergyType string   `json:"energyType,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `json:"unit,omitempty"`
}

// Intensity is the denominator used for energy and emissions intensity ratios.
type Intensity struct {
	Denominator string   `json:"denominator,omitempty"`
	Value       *float64 `json:"value,omitempty"`
}

// Water is the water withdrawal and discharge step.
type Water struct {
	Year        *int            `json:"year,omitempty"`
	SiteID      string          `json:"siteId,omitempty"`
	Withdrawals []WithdrawalRow `json:"withdrawals,omitempty"`
	Discharges  []DischargeRow  `json:"discharges,omitempty"`
	WaterStress bool            `json:"waterStressedArea,omitempty"`
}

// WithdrawalRow is one water withdrawal line.
type WithdrawalRow struct {
	Source   string   `json:"source,omitempty"`
	Quality  string   `json:"quality,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Method   string   `json:"method,omitempty"`
	Period   *Period  `json:"period,omitempty"`
}

// DischargeRow is one water discharge line.
type DischargeRow struct {
	Destination string   `json:"destination,omitempty"`
	Treatment   string   `json:"treatment,omitempty"`
	Reused      bool     `json:"reused,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Period      *Period  `json:"period,omitempty"`
}

// Biodiversity is the sites and impacts step.
type Biodiversity struct {
	Year    *int     `json:"year,omitempty"`
	Sites   []Site   `json:"sites,omitempty"`
	Impacts []Impact `json:"impacts,omitempty"`
}

// Site is an operational site assessed for biodiversity sensitivity.
type Site struct {
	Name         string   `json:"name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	AreaHectares *float64 `json:"areaHa,omitempty"`
	Habitat      string   `json:"habitat,omitempty"`
	Designations []string `json:"designations,omitempty"`
}

// Impact is an assessed impact of an activity on a receptor.
type Impact struct {
	SiteName        string `json:"siteName,omitempty"`
	Activity        string `json:"activity,omitempty"`
	Receptor        string `json:"receptor,omitempty"`
	Proximity       string `json:"proximity,omitempty"`
	Severity        *int   `json:"severity,omitempty"`
	Extent          *int   `json:"extent,omitempty"`
	Irreversibility *int   `json:"irreversibility,omitempty"`
	Avoid           bool   `json:"avoid,omitempty"`
	Minimize        bool   `json:"minimize,omitempty"`
	Restore         bool   `json:"restore,omitempty"`
	Offset          bool   `json:"offset,omitempty"`
}

// Waste is the waste generation step.
type Waste struct {
	Year *int       `json:"year,omitempty"`
	Rows []WasteRow `json:"rows,omitempty"`
}

// WasteRow is one waste stream line.
type WasteRow struct {
	Stream           string   `json:"stream,omitempty"`
	HazardClass      string   `json:"hazardClass,omitempty"`
	PhysicalState    string   `json:"physicalState,omitempty"`
	ManagementRoute  string   `json:"managementRoute,omitempty"`
	ManagementMethod string   `json:"managementMethod,omitempty"`
	Destination      string   `json:"destination,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Unit             string   `json:"unit,omitempty"`
	Method           string   `json:"measurementMethod,omitempty"`
}
