package bridge

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rshade/esgsync/internal/dashboard"
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// Score weights. A perfect fit scores MaxScore.
const (
	WeightSector    = 30
	WeightRegion    = 20
	WeightTicket    = 25
	WeightFocus     = 15
	WeightReadiness = 10

	MaxScore = WeightSector + WeightRegion + WeightTicket + WeightFocus + WeightReadiness
)

// Need is the funding the company is looking for. A nil Amount falls back
// to the profile's funding need.
type Need struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Candidate is one ranked investor.
type Candidate struct {
	Investor Investor `json:"investor"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
}

// Match ranks the directory's investors for a company. Investors whose
// minimum readiness is above the dashboard completeness are dropped.
// Results are ordered by score, then name. A limit of zero or less
// returns every match.
func (d *Directory) Match(profile *wizard.Profile, kpis dashboard.KPIs, need Need, limit int) []Candidate {
	if d == nil {
		return nil
	}
	if profile == nil {
		profile = &wizard.Profile{}
	}
	if need.Amount == nil {
		need.Amount = profile.FundingNeed
	}
	if need.Currency == "" {
		need.Currency = profile.Currency
	}

	sector, _ := enums.Sector.Normalize(profile.Sector)
	focus := enums.ESGFocus.NormalizeAll(profile.ESGFocus)
	readiness := kpis.Completeness.Ratio

	matches := make([]Candidate, 0, len(d.Investors))
	for _, inv := range d.Investors {
		if readiness < inv.MinReadiness {
			continue
		}
		m := Candidate{Investor: inv, Reasons: []string{}}
		m.add(sectorScore(inv, sector))
		m.add(regionScore(inv, profile))
		m.add(ticketScore(inv, need))
		m.add(focusScore(inv, focus))
		m.add(WeightReadiness, fmt.Sprintf("disclosure %s complete meets the %s minimum",
			units.FormatPercent(readiness), units.FormatPercent(inv.MinReadiness)))
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return fold(matches[a].Investor.Name) < fold(matches[b].Investor.Name)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (m *Candidate) add(points int, reason string) {
	if points <= 0 {
		return
	}
	m.Score += points
	if reason != "" {
		m.Reasons = append(m.Reasons, reason)
	}
}

// sectorScore gives generalist investors, those listing no sectors, half marks.
func sectorScore(inv Investor, sector string) (int, string) {
	if len(inv.Sectors) == 0 {
		return WeightSector / 2, "sector-agnostic mandate"
	}
	if sector == "" {
		return 0, ""
	}
	for _, s := range inv.Sectors {
		if s == sector {
			return WeightSector, "invests in " + enums.Sector.Label(sector)
		}
	}
	return 0, ""
}

func regionScore(inv Investor, p *wizard.Profile) (int, string) {
	candidates := []string{p.Region, p.Country}
	for _, r := range inv.Regions {
		if fold(r) == RegionGlobal {
			return WeightRegion, "invests globally"
		}
		for _, c := range candidates {
			if c != "" && fold(r) == fold(c) {
				return WeightRegion, "active in " + r
			}
		}
	}
	return 0, ""
}

// ticketScore requires the need to sit inside the investor's ticket range.
// Currencies are not converted: a currency mismatch scores nothing.
func ticketScore(inv Investor, need Need) (int, string) {
	if need.Amount == nil || math.IsNaN(*need.Amount) || *need.Amount <= 0 {
		return 0, ""
	}
	if inv.TicketMin == nil && inv.TicketMax == nil {
		return 0, ""
	}
	if inv.Currency != "" && need.Currency != "" && !strings.EqualFold(inv.Currency, need.Currency) {
		return 0, ""
	}
	amt := *need.Amount
	if inv.TicketMin != nil && amt < *inv.TicketMin {
		return 0, ""
	}
	if inv.TicketMax != nil && amt > *inv.TicketMax {
		return 0, ""
	}
	return WeightTicket, "ticket size fits " + ticketRange(inv)
}

// focusScore is proportional to the share of the investor's focus areas the
// company also reports against.
func focusScore(inv Investor, focus []string) (int, string) {
	if len(inv.ESGFocus) == 0 || len(focus) == 0 {
		return 0, ""
	}
	have := make(map[string]bool, len(focus))
	for _, f := range focus {
		have[f] = true
	}
	var shared []string
	for _, f := range inv.ESGFocus {
		if have[f] {
			shared = append(shared, enums.ESGFocus.Label(f))
		}
	}
	if len(shared) == 0 {
		return 0, ""
	}
	points := int(math.Round(float64(WeightFocus) * float64(len(shared)) / float64(len(inv.ESGFocus))))
	return points, "shared ESG focus: " + strings.Join(shared, ", ")
}

func ticketRange(inv Investor) string {
	cur := inv.Currency
	if cur != "" {
		cur += " "
	}
	switch {
	case inv.TicketMin != nil && inv.TicketMax != nil:
		return cur + units.FormatNumber(int64(*inv.TicketMin)) + "-" + units.FormatNumber(int64(*inv.TicketMax))
	case inv.TicketMin != nil:
		return cur + units.FormatNumber(int64(*inv.TicketMin)) + "+"
	default:
		return "up to " + cur + units.FormatNumber(int64(*inv.TicketMax))
	}
}
