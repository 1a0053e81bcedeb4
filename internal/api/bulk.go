package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rshade/esgsync/internal/batch"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/mapper"
)

// sendChunks posts items in bulk-size chunks, each wrapped into a request body.
// Progress is logged at debug level after every chunk.
func sendChunks[T any](ctx context.Context, c *Client, path, label string, items []T, wrap func([]T) any) error {
	if len(items) == 0 {
		return nil
	}
	p, err := batch.NewProcessor[T](c.bulkSize)
	if err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	p.WithProgressCallback(func(pr batch.Progress) {
		log.Debug().
			Str("path", path).
			Str("rows", label).
			Int("chunk", pr.ProcessedChunks).
			Int("chunks", pr.TotalChunks).
			Int("processed_items", pr.ProcessedItems).
			Int("total_items", pr.TotalItems).
			Float64("percent", pr.PercentComplete()).
			Bool("complete", pr.IsComplete()).
			Msg("bulk chunk sent")
	})
	err = p.Process(ctx, items, func(ctx context.Context, chunk []T, _ int) error {
		return c.do(ctx, http.MethodPost, path, wrap(chunk), nil)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

// WaterBulk uploads withdrawal and discharge rows for waterID. Rows that fit
// in one chunk go in a single request; otherwise each list is chunked.
func (c *Client) WaterBulk(ctx context.Context, companyID, waterID string, p *mapper.WaterBulkPayload) error {
	if p == nil {
		return nil
	}
	if err := requireID(waterID); err != nil {
		return err
	}
	path, err := companyPath(companyID, "environment", "water", waterID, "bulk")
	if err != nil {
		return err
	}
	if len(p.Withdrawals)+len(p.Discharges) == 0 {
		return nil
	}
	if len(p.Withdrawals)+len(p.Discharges) <= c.bulkSize {
		return c.do(ctx, http.MethodPost, path, p, nil)
	}
	if err := sendChunks(ctx, c, path, "withdrawals", p.Withdrawals, func(rows []mapper.WithdrawalPayload) any {
		return mapper.WaterBulkPayload{Withdrawals: rows}
	}); err != nil {
		return err
	}
	return sendChunks(ctx, c, path, "discharges", p.Discharges, func(rows []mapper.DischargePayload) any {
		return mapper.WaterBulkPayload{Discharges: rows}
	})
}

// BiodiversityBulk uploads site and impact rows for bioID.
func (c *Client) BiodiversityBulk(
	ctx context.Context, companyID, bioID string, p *mapper.BiodiversityBulkPayload,
) error {
	if p == nil {
		return nil
	}
	if err := requireID(bioID); err != nil {
		return err
	}
	path, err := companyPath(companyID, "environment", "biodiversity", bioID, "bulk")
	if err != nil {
		return err
	}
	if len(p.Sites)+len(p.Impacts) == 0 {
		return nil
	}
	if len(p.Sites)+len(p.Impacts) <= c.bulkSize {
		return c.do(ctx, http.MethodPost, path, p, nil)
	}
	if err := sendChunks(ctx, c, path, "sites", p.Sites, func(rows []mapper.SitePayload) any {
		return mapper.BiodiversityBulkPayload{Sites: rows}
	}); err != nil {
		return err
	}
	return sendChunks(ctx, c, path, "impacts", p.Impacts, func(rows []mapper.ImpactPayload) any {
		return mapper.BiodiversityBulkPayload{Impacts: rows}
	})
}

// WasteBulk uploads waste stream rows for wasteID.
func (c *Client) WasteBulk(ctx context.Context, companyID, wasteID string, p *mapper.WasteBulkPayload) error {
	if p == nil {
		return nil
	}
	if err := requireID(wasteID); err != nil {
		return err
	}
	path, err := companyPath(companyID, "environment", "waste", wasteID, "bulk")
	if err != nil {
		return err
	}
	return sendChunks(ctx, c, path, "waste rows", p.Rows, func(rows []mapper.WasteRowPayload) any {
		return mapper.WasteBulkPayload{Rows: rows}
	})
}
