package mapper

import (
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/wizard"
)

// BiodiversityRecordPayload is the body of POST .../environment/biodiversity.
type BiodiversityRecordPayload struct {
	Year           *int     `json:"year,omitempty"`
	SiteCount      int      `json:"site_count"`
	ProtectedSites int      `json:"protected_sites"`
	TotalAreaHa    *float64 `json:"total_area_ha,omitempty"`
}

// BiodiversityBulkPayload is the body of POST .../biodiversity/:bioId/bulk.
type BiodiversityBulkPayload struct {
	Sites   []SitePayload   `json:"sites,omitempty"`
	Impacts []ImpactPayload `json:"impacts,omitempty"`
}

// SitePayload is one assessed site.
type SitePayload struct {
	Name         *string  `json:"name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	AreaHa       *float64 `json:"area_ha,omitempty"`
	Habitat      *string  `json:"habitat,omitempty"`
	Designations []string `json:"designations,omitempty"`
}

// ImpactPayload is one impact assessment with its mitigation hierarchy flags.
type ImpactPayload struct {
	SiteName        *string `json:"site_name,omitempty"`
	Activity        *string `json:"activity,omitempty"`
	Receptor        *string `json:"receptor,omitempty"`
	Proximity       *string `json:"proximity,omitempty"`
	Severity        *int    `json:"severity,omitempty"`
	Extent          *int    `json:"extent,omitempty"`
	Irreversibility *int    `json:"irreversibility,omitempty"`
	Avoid           bool    `json:"avoid,omitempty"`
	Minimize        bool    `json:"minimize,omitempty"`
	Restore         bool    `json:"restore,omitempty"`
	Offset          bool    `json:"offset,omitempty"`
}

func siteEmpty(s wizard.Site) bool {
	return allBlank(s.Name, s.Habitat) && noneSet(s.Latitude, s.Longitude, s.AreaHectares) && len(s.Designations) == 0
}

func impactEmpty(i wizard.Impact) bool {
	return allBlank(i.SiteName, i.Activity, i.Receptor, i.Proximity) &&
		noneSet(i.Severity, i.Extent, i.Irreversibility) &&
		!i.Avoid && !i.Minimize && !i.Restore && !i.Offset
}

// BiodiversityIsEmpty reports whether no site or impact is filled in.
func BiodiversityIsEmpty(b *wizard.Biodiversity) bool {
	if b == nil {
		return true
	}
	for _, s := range b.Sites {
		if !siteEmpty(s) {
			return false
		}
	}
	for _, i := range b.Impacts {
		if !impactEmpty(i) {
			return false
		}
	}
	return true
}

// BiodiversityRecord builds the biodiversity record create body.
func BiodiversityRecord(b *wizard.Biodiversity, year *int) *BiodiversityRecordPayload {
	if BiodiversityIsEmpty(b) {
		return nil
	}
	p := &BiodiversityRecordPayload{}
	if y, ok := resolve.First(resolve.Explicit(b.Year), resolve.Explicit(year)); ok {
		p.Year = &y
	}
	var area float64
	var hasArea bool
	for _, s := range b.Sites {
		if siteEmpty(s) {
			continue
		}
		p.SiteCount++
		if len(enums.ProtectedDesignation.NormalizeAll(s.Designations)) > 0 {
			p.ProtectedSites++
		}
		if a := num(s.AreaHectares); a != nil {
			area += *a
			hasArea = true
		}
	}
	if hasArea {
		p.TotalAreaHa = finite(area)
	}
	return p
}

// BiodiversityBulk builds the sites and impacts body.
// Coordinates outside the valid latitude and longitude ranges are omitted.
func BiodiversityBulk(b *wizard.Biodiversity) *BiodiversityBulkPayload {
	if BiodiversityIsEmpty(b) {
		return nil
	}
	p := &BiodiversityBulkPayload{}
	for _, s := range b.Sites {
		if siteEmpty(s) {
			continue
		}
		p.Sites = append(p.Sites, SitePayload{
			Name:         text(s.Name),
			Latitude:     inRange(s.Latitude, -90, 90),
			Longitude:    inRange(s.Longitude, -180, 180),
			AreaHa:       num(s.AreaHectares),
			Habitat:      tag(enums.Habitat, s.Habitat),
			Designations: tags(enums.ProtectedDesignation, s.Designations),
		})
	}
	for _, i := range b.Impacts {
		if impactEmpty(i) {
			continue
		}
		p.Impacts = append(p.Impacts, ImpactPayload{
			SiteName:        text(i.SiteName),
			Activity:        tag(enums.ImpactActivity, i.Activity),
			Receptor:        tag(enums.Receptor, i.Receptor),
			Proximity:       tag(enums.Proximity, i.Proximity),
			Severity:        score(i.Severity),
			Extent:          score(i.Extent),
			Irreversibility: score(i.Irreversibility),
			Avoid:           i.Avoid,
			Minimize:        i.Minimize,
			Restore:         i.Restore,
			Offset:          i.Offset,
		})
	}
	return p
}

func inRange(p *float64, lo, hi float64) *float64 {
	v := num(p)
	if v == nil || *v < lo || *v > hi {
		return nil
	}
	return v
}

// score keeps 1-5 impact scores and drops anything else.
func score(p *int) *int {
	if p == nil || *p < 1 || *p > 5 {
		return nil
	}
	return ptr(*p)
}
