package workflow

import (
	"context"
	"fmt"

	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/wizard"
)

// syncResource runs one sub-resource cycle. It sets Status to skipped or
// success; the caller turns a non-nil Err into failed.
func (o *Orchestrator) syncResource(ctx context.Context, resource string, s *wizard.State) ResourceResult {
	res := ResourceResult{Resource: resource, Status: StatusSkipped}
	company := s.CompanyID
	ids := &s.SyncIDs

	switch resource {
	case mapper.SectionGovernance:
		p := mapper.Governance(s.Governance, s.Year)
		if p == nil {
			return res
		}
		res.ID, res.Created, res.Err = ensureID(&ids.Governance, func() (string, error) {
			return o.backend.CreateGovernance(ctx, company, &mapper.GovernancePayload{Year: p.Year})
		})
		if res.Err == nil {
			res.Err = o.backend.UpsertGovernance(ctx, company, res.ID, p)
		}

	case mapper.SectionSocial:
		p := mapper.Social(s.Social, s.Year)
		if p == nil {
			return res
		}
		res.ID, res.Created, res.Err = ensureID(&ids.Social, func() (string, error) {
			return o.backend.CreateSocial(ctx, company, &mapper.SocialPayload{Year: p.Year})
		})
		if res.Err == nil {
			res.Err = o.backend.UpsertSocial(ctx, company, res.ID, p)
		}

	case mapper.SectionGHG:
		p := mapper.GHG(s.GHG, s.Year)
		if p == nil {
			return res
		}
		var id string
		id, res.Err = o.backend.UpsertGHG(ctx, company, p)
		res.ID = remember(&ids.GHG, id)

	case mapper.SectionResources:
		p := mapper.Resources(s.Resources, s.Year)
		if p == nil {
			return res
		}
		var id string
		id, res.Err = o.backend.UpsertResources(ctx, company, p)
		res.ID = remember(&ids.Resources, id)

	case mapper.SectionWater:
		p := mapper.WaterRecord(s.Water, s.Year)
		if p == nil {
			return res
		}
		res.ID, res.Created, res.Err = ensureID(&ids.Water, func() (string, error) {
			return o.backend.CreateWater(ctx, company, p)
		})
		if res.Err == nil {
			res.Err = o.backend.WaterBulk(ctx, company, res.ID, mapper.WaterBulk(s.Water))
		}

	case mapper.SectionBiodiversity:
		p := mapper.BiodiversityRecord(s.Biodiversity, s.Year)
		if p == nil {
			return res
		}
		res.ID, res.Created, res.Err = ensureID(&ids.Biodiversity, func() (string, error) {
			return o.backend.CreateBiodiversity(ctx, company, p)
		})
		if res.Err == nil {
			res.Err = o.backend.BiodiversityBulk(ctx, company, res.ID, mapper.BiodiversityBulk(s.Biodiversity))
		}

	case mapper.SectionWaste:
		p := mapper.WasteRecord(s.Waste, s.Year)
		if p == nil {
			return res
		}
		res.ID, res.Created, res.Err = ensureID(&ids.Waste, func() (string, error) {
			return o.backend.CreateWaste(ctx, company, p)
		})
		if res.Err == nil {
			res.Err = o.backend.WasteBulk(ctx, company, res.ID, mapper.WasteBulk(s.Waste))
		}

	default:
		res.Err = fmt.Errorf("%w: %q", mapper.ErrUnknownSection, resource)
		return res
	}

	if res.Err == nil {
		res.Status = StatusSuccess
	}
	return res
}

// ensureID returns the cached id or creates the record and caches its id.
// A create that succeeds without returning an id is an error because the
// follow-up call needs it.
func ensureID(cached *string, create func() (string, error)) (string, bool, error) {
	if *cached != "" {
		return *cached, false, nil
	}
	id, err := create()
	if err != nil {
		return "", false, fmt.Errorf("create: %w", err)
	}
	if id == "" {
		return "", false, errNoID
	}
	*cached = id
	return id, true, nil
}

// remember caches a non-empty id from an upsert and returns the best id known.
func remember(cached *string, id string) string {
	if id != "" {
		*cached = id
	}
	return *cached
}
