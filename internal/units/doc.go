// Package units converts heterogeneous physical quantities into the canonical
// reporting units used by the disclosure API.
//
// Energy is reported in MWh, emissions in tCO2e, water in cubic metres and
// waste mass in metric tonnes. Unit matching is case-insensitive and tolerant
// of the superscript and caret spellings users type into forms (m³, m^3, m3).
package units
