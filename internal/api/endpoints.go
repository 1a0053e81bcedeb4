package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/esgsync/internal/mapper"
)

func (c *Client) create(ctx context.Context, path string, body any) (string, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, path, body, &rec); err != nil {
		return "", err
	}
	return rec.RecordID(), nil
}

func (c *Client) put(ctx context.Context, path string, body any) (string, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPut, path, body, &rec); err != nil {
		return "", err
	}
	return rec.RecordID(), nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNoRecordID
	}
	return nil
}

// CreateGovernance creates the governance record and returns its id.
func (c *Client) CreateGovernance(ctx context.Context, companyID string, p *mapper.GovernancePayload) (string, error) {
	path, err := companyPath(companyID, "governance")
	if err != nil {
		return "", err
	}
	return c.create(ctx, path, p)
}

// UpsertGovernance replaces the governance record govID.
func (c *Client) UpsertGovernance(ctx context.Context, companyID, govID string, p *mapper.GovernancePayload) error {
	if err := requireID(govID); err != nil {
		return err
	}
	path, err := companyPath(companyID, "governance", govID)
	if err != nil {
		return err
	}
	_, err = c.put(ctx, path, p)
	return err
}

// CreateSocial creates the social record and returns its id.
func (c *Client) CreateSocial(ctx context.Context, companyID string, p *mapper.SocialPayload) (string, error) {
	path, err := companyPath(companyID, "social")
	if err != nil {
		return "", err
	}
	return c.create(ctx, path, p)
}

// UpsertSocial replaces the social record socialID.
func (c *Client) UpsertSocial(ctx context.Context, companyID, socialID string, p *mapper.SocialPayload) error {
	if err := requireID(socialID); err != nil {
		return err
	}
	path, err := companyPath(companyID, "social", socialID)
	if err != nil {
		return err
	}
	_, err = c.put(ctx, path, p)
	return err
}

// UpsertGHG upserts the year's GHG inventory. The returned id may be empty.
func (c *Client) UpsertGHG(ctx context.Context, companyID string, p *mapper.GHGPayload) (string, error) {
	path, err := companyPath(companyID, "environment", "ghg", "upsert")
	if err != nil {
		return "", err
	}
	return c.put(ctx, path, p)
}

// UpsertResources upserts the year's resource consumption.
func (c *Client) UpsertResources(ctx context.Context, companyID string, p *mapper.ResourcesPayload) (string, error) {
	path, err := companyPath(companyID, "environment", "resources", "upsert")
	if err != nil {
		return "", err
	}
	return c.put(ctx, path, p)
}

// CreateWater creates the water parent record.
func (c *Client) CreateWater(ctx context.Context, companyID string, p *mapper.WaterRecordPayload) (string, error) {
	path, err := companyPath(companyID, "environment", "water")
	if err != nil {
		return "", err
	}
	return c.create(ctx, path, p)
}

// CreateBiodiversity creates the biodiversity parent record.
func (c *Client) CreateBiodiversity(
	ctx context.Context, companyID string, p *mapper.BiodiversityRecordPayload,
) (string, error) {
	path, err := companyPath(companyID, "environment", "biodiversity")
	if err != nil {
		return "", err
	}
	return c.create(ctx, path, p)
}

// CreateWaste creates the waste parent record.
func (c *Client) CreateWaste(ctx context.Context, companyID string, p *mapper.WasteRecordPayload) (string, error) {
	path, err := companyPath(companyID, "environment", "waste")
	if err != nil {
		return "", err
	}
	return c.create(ctx, path, p)
}

// UpdateProfile saves the onboarding profile.
func (c *Client) UpdateProfile(ctx context.Context, companyID string, p *mapper.ProfilePayload) error {
	path, err := companyPath(companyID, "profile")
	if err != nil {
		return err
	}
	_, err = c.put(ctx, path, p)
	return err
}

// Receipt acknowledges a submitted disclosure.
type Receipt struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type submitRequest struct {
	Year *int `json:"year,omitempty"`
}

// SubmitDisclosure marks the reporting year as submitted.
func (c *Client) SubmitDisclosure(ctx context.Context, companyID string, year *int) (*Receipt, error) {
	path, err := companyPath(companyID, "disclosures", "submit")
	if err != nil {
		return nil, err
	}
	var r Receipt
	if err := c.do(ctx, http.MethodPost, path, submitRequest{Year: year}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
