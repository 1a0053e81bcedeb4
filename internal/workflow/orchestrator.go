package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rshade/esgsync/internal/api"
	"github.com/rshade/esgsync/internal/draft"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/validation"
	"github.com/rshade/esgsync/internal/wizard"
)

// Workflow errors.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrPartialSync      = errors.New("some disclosure sections failed to sync")
	ErrMissingCompany   = errors.New("company id is required to sync")
	ErrNoBackend        = errors.New("no backend configured")
)

// Operation names used in logs, metrics and spans.
const (
	OpSaveDraft      = "save_draft"
	OpSubmit         = "submit"
	OpSaveOnboarding = "save_onboarding"
)

const tracerName = "github.com/rshade/esgsync/internal/workflow"

// Backend is the part of the disclosure API the orchestrator calls.
// *api.Client implements it.
type Backend interface {
	CreateGovernance(ctx context.Context, companyID string, p *mapper.GovernancePayload) (string, error)
	UpsertGovernance(ctx context.Context, companyID, govID string, p *mapper.GovernancePayload) error
	CreateSocial(ctx context.Context, companyID string, p *mapper.SocialPayload) (string, error)
	UpsertSocial(ctx context.Context, companyID, socialID string, p *mapper.SocialPayload) error
	UpsertGHG(ctx context.Context, companyID string, p *mapper.GHGPayload) (string, error)
	UpsertResources(ctx context.Context, companyID string, p *mapper.ResourcesPayload) (string, error)
	CreateWater(ctx context.Context, companyID string, p *mapper.WaterRecordPayload) (string, error)
	WaterBulk(ctx context.Context, companyID, waterID string, p *mapper.WaterBulkPayload) error
	CreateBiodiversity(ctx context.Context, companyID string, p *mapper.BiodiversityRecordPayload) (string, error)
	BiodiversityBulk(ctx context.Context, companyID, bioID string, p *mapper.BiodiversityBulkPayload) error
	CreateWaste(ctx context.Context, companyID string, p *mapper.WasteRecordPayload) (string, error)
	WasteBulk(ctx context.Context, companyID, wasteID string, p *mapper.WasteBulkPayload) error
	UpdateProfile(ctx context.Context, companyID string, p *mapper.ProfilePayload) error
	SubmitDisclosure(ctx context.Context, companyID string, year *int) (*api.Receipt, error)
}

var _ Backend = (*api.Client)(nil)

// Orchestrator runs save-draft and submit against a Backend.
type Orchestrator struct {
	backend   Backend
	drafts    draft.Store
	draftKey  string
	validator *validation.Validator
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDraftStore mirrors the synced state to store under key after each run.
func WithDraftStore(store draft.Store, key string) Option {
	return func(o *Orchestrator) {
		o.drafts = store
		if strings.TrimSpace(key) == "" {
			key = draft.DefaultKey
		}
		o.draftKey = key
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) { o.validator = v }
}

// WithMetrics records sync outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// New returns an Orchestrator.
func New(backend Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: backend,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) validate(s *wizard.State, mode validation.Mode) validation.Result {
	if o.validator != nil {
		return o.validator.Validate(s, mode)
	}
	return validation.Validate(s, mode)
}

// SaveDraft syncs every non-blank section and mirrors the result. Section
// failures are reported in the Report, not returned as an error. Validation
// runs in draft mode and is reported without blocking.
func (o *Orchestrator) SaveDraft(ctx context.Context, state *wizard.State) (*Report, error) {
	start := time.Now()
	defer o.metrics.observeOperation(OpSaveDraft, start)

	working, err := o.prepare(state)
	if err != nil {
		return nil, err
	}

	vr := o.validate(working, validation.ModeDraft)
	report := &Report{Mode: validation.ModeDraft, Validation: &vr, Updated: working}

	ctx = withOperation(ctx, OpSaveDraft, working.CompanyID)
	report.Results = o.syncAll(ctx, OpSaveDraft, working)
	o.mirror(ctx, report)

	logSummary(ctx, report)
	return report, nil
}

// Submit validates in submit mode, syncs every section and, when all of them
// succeeded, submits the disclosure. It returns ErrValidationFailed without
// any network call when the state is invalid, and ErrPartialSync with the
// report when a section failed.
func (o *Orchestrator) Submit(ctx context.Context, state *wizard.State) (*Report, error) {
	start := time.Now()
	defer o.metrics.observeOperation(OpSubmit, start)

	working, err := o.prepare(state)
	if err != nil {
		return nil, err
	}

	vr := o.validate(working, validation.ModeSubmit)
	report := &Report{Mode: validation.ModeSubmit, Validation: &vr, Updated: working}
	if vr.HasErrors() {
		return report, fmt.Errorf("%w: %s", ErrValidationFailed, vr.ErrorSummary())
	}

	ctx = withOperation(ctx, OpSubmit, working.CompanyID)
	report.Results = o.syncAll(ctx, OpSubmit, working)
	o.mirror(ctx, report)

	if !report.OK() {
		logSummary(ctx, report)
		return report, fmt.Errorf("%w: %s", ErrPartialSync, report.ErrorSummary())
	}

	ctx, span := o.tracer.Start(ctx, "workflow.submit_disclosure")
	receipt, err := o.backend.SubmitDisclosure(ctx, working.CompanyID, working.Year)
	endSpan(span, err)
	if err != nil {
		logFailure(ctx, "disclosure", err)
		return report, fmt.Errorf("submitting disclosure: %w", err)
	}
	report.Receipt = receipt

	logSummary(ctx, report)
	return report, nil
}

// prepare clones state so the caller's copy is never mutated.
func (o *Orchestrator) prepare(state *wizard.State) (*wizard.State, error) {
	if o.backend == nil {
		return nil, ErrNoBackend
	}
	working, err := state.Clone()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(working.CompanyID) == "" {
		return nil, ErrMissingCompany
	}
	return working, nil
}

// syncAll runs every sub-resource in order, recording ids on s.
func (o *Orchestrator) syncAll(ctx context.Context, operation string, s *wizard.State) []ResourceResult {
	results := make([]ResourceResult, 0, len(mapper.SyncOrder))
	for _, resource := range mapper.SyncOrder {
		results = append(results, o.syncOne(ctx, operation, resource, s))
	}
	return results
}

func (o *Orchestrator) syncOne(ctx context.Context, operation, resource string, s *wizard.State) ResourceResult {
	ctx, span := o.tracer.Start(ctx, "workflow.sync."+resource,
		trace.WithAttributes(
			attribute.String("esgsync.operation", operation),
			attribute.String("esgsync.resource", resource),
		))
	start := time.Now()

	res := o.syncResource(ctx, resource, s)
	if res.Err != nil {
		res.Status = StatusFailed
		res.Error = res.Err.Error()
		logFailure(ctx, resource, res.Err)
	}

	span.SetAttributes(attribute.String("esgsync.status", string(res.Status)))
	endSpan(span, res.Err)
	o.metrics.observeResource(operation, resource, res.Status)

	logging.FromContext(ctx).Debug().
		Str(logging.FieldResource, resource).
		Str(logging.FieldStatus, string(res.Status)).
		Str("record_id", res.ID).
		Int64(logging.FieldDurationMs, time.Since(start).Milliseconds()).
		Msg("sub-resource synced")
	return res
}

// mirror writes the updated state to the draft store. Failures are logged
// and attached to the report.
func (o *Orchestrator) mirror(ctx context.Context, report *Report) {
	if o.drafts == nil {
		return
	}
	env, err := draft.SaveState(ctx, o.drafts, o.draftKey, report.Updated)
	if err != nil {
		report.MirrorErr = err
		o.metrics.incMirrorFailure()
		logging.FromContext(ctx).Warn().Err(err).Str("draft_key", o.draftKey).Msg("draft mirror failed")
		return
	}
	report.DraftID = env.DraftID
}

func withOperation(ctx context.Context, operation, companyID string) context.Context {
	l := logging.FromContext(ctx).With().
		Str(logging.FieldOperation, operation).
		Str(logging.FieldCompanyID, companyID).
		Logger()
	return l.WithContext(ctx)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// logFailure logs err, including the response body of backend rejections.
func logFailure(ctx context.Context, resource string, err error) {
	event := logging.FromContext(ctx).Error().Err(err).Str(logging.FieldResource, resource)
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		event = event.Int("http_status", apiErr.Status).Str("response_body", apiErr.Body)
	}
	event.Msg("sub-resource sync failed")
}

func logSummary(ctx context.Context, report *Report) {
	logging.FromContext(ctx).Info().
		Int("succeeded", len(report.Succeeded())).
		Int("failed", len(report.Failed())).
		Bool("partial", report.Partial()).
		Str("draft_id", report.DraftID).
		Msg("sync finished")
}

var errNoID = errors.New("backend returned no record id")
