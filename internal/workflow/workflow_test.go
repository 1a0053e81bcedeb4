package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/rshade/esgsync/internal/api"
	"github.com/rshade/esgsync/internal/draft"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/validation"
	"github.com/rshade/esgsync/internal/wizard"
	"github.com/rshade/esgsync/internal/workflow"
)

const companyID = "0b6c2c3e-8a55-4d1c-9a53-1f4c3b1a9e10"

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

// fakeBackend records calls and fails the methods named in failOn.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]error
	nextID int

	ghg     *mapper.GHGPayload
	profile *mapper.ProfilePayload
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failOn: map[string]error{}}
}

func (b *fakeBackend) record(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
	return b.failOn[name]
}

func (b *fakeBackend) id(prefix string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) CreateGovernance(context.Context, string, *mapper.GovernancePayload) (string, error) {
	if err := b.record("CreateGovernance"); err != nil {
		return "", err
	}
	return b.id("gov"), nil
}

func (b *fakeBackend) UpsertGovernance(context.Context, string, string, *mapper.GovernancePayload) error {
	return b.record("UpsertGovernance")
}

func (b *fakeBackend) CreateSocial(context.Context, string, *mapper.SocialPayload) (string, error) {
	if err := b.record("CreateSocial"); err != nil {
		return "", err
	}
	return b.id("soc"), nil
}

func (b *fakeBackend) UpsertSocial(context.Context, string, string, *mapper.SocialPayload) error {
	return b.record("UpsertSocial")
}

func (b *fakeBackend) UpsertGHG(_ context.Context, _ string, p *mapper.GHGPayload) (string, error) {
	b.ghg = p
	return "", b.record("UpsertGHG")
}

func (b *fakeBackend) UpsertResources(context.Context, string, *mapper.ResourcesPayload) (string, error) {
	return "res-1", b.record("UpsertResources")
}

func (b *fakeBackend) CreateWater(context.Context, string, *mapper.WaterRecordPayload) (string, error) {
	if err := b.record("CreateWater"); err != nil {
		return "", err
	}
	return b.id("water"), nil
}

func (b *fakeBackend) WaterBulk(context.Context, string, string, *mapper.WaterBulkPayload) error {
	return b.record("WaterBulk")
}

func (b *fakeBackend) CreateBiodiversity(context.Context, string, *mapper.BiodiversityRecordPayload) (string, error) {
	if err := b.record("CreateBiodiversity"); err != nil {
		return "", err
	}
	return b.id("bio"), nil
}

func (b *fakeBackend) BiodiversityBulk(context.Context, string, string, *mapper.BiodiversityBulkPayload) error {
	return b.record("BiodiversityBulk")
}

func (b *fakeBackend) CreateWaste(context.Context, string, *mapper.WasteRecordPayload) (string, error) {
	if err := b.record("CreateWaste"); err != nil {
		return "", err
	}
	return b.id("waste"), nil
}

func (b *fakeBackend) WasteBulk(context.Context, string, string, *mapper.WasteBulkPayload) error {
	return b.record("WasteBulk")
}

func (b *fakeBackend) UpdateProfile(_ context.Context, _ string, p *mapper.ProfilePayload) error {
	b.profile = p
	return b.record("UpdateProfile")
}

func (b *fakeBackend) SubmitDisclosure(context.Context, string, *int) (*api.Receipt, error) {
	if err := b.record("SubmitDisclosure"); err != nil {
		return nil, err
	}
	return &api.Receipt{ID: "disc-1", Status: "submitted"}, nil
}

type WorkflowSuite struct {
	suite.Suite

	backend *fakeBackend
	store   *draft.MemoryStore
	metrics *workflow.Metrics
	orch    *workflow.Orchestrator
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.backend = newFakeBackend()
	s.store = draft.NewMemoryStore()
	s.metrics = workflow.NewMetrics(prometheus.NewRegistry())
	s.orch = workflow.New(s.backend,
		workflow.WithDraftStore(s.store, ""),
		workflow.WithMetrics(s.metrics),
	)
}

func ghgOnly() *wizard.State {
	st := wizard.New(companyID, 2024)
	st.GHG = &wizard.GHGInventory{Year: i(2024), Scope1TCO2e: f(100), Scope2TCO2e: f(50)}
	return st
}

func fullState() *wizard.State {
	st := ghgOnly()
	st.Governance = &wizard.Governance{Directors: []wizard.Director{{Name: "A. Chair"}}}
	st.Social = &wizard.Social{Workforce: []wizard.WorkforceRow{{Location: "HQ", Female: i(10), Male: i(12)}}}
	st.Water = &wizard.Water{Withdrawals: []wizard.WithdrawalRow{{Quantity: f(120), Unit: "m3"}}}
	st.Waste = &wizard.Waste{Rows: []wizard.WasteRow{{Quantity: f(2), Unit: "t"}}}
	return st
}

func (s *WorkflowSuite) statuses(r *workflow.Report) map[string]workflow.Status {
	out := map[string]workflow.Status{}
	for _, res := range r.Results {
		out[res.Resource] = res.Status
	}
	return out
}

func (s *WorkflowSuite) TestSaveDraft_CreatesThenUpserts() {
	report, err := s.orch.SaveDraft(context.Background(), fullState())
	s.Require().NoError(err)
	s.True(report.OK())
	s.False(report.Partial())
	s.Equal(validation.ModeDraft, report.Mode)

	s.Equal([]string{
		"CreateGovernance", "UpsertGovernance",
		"CreateSocial", "UpsertSocial",
		"UpsertGHG",
		"CreateWater", "WaterBulk",
		"CreateWaste", "WasteBulk",
	}, s.backend.Calls())

	st := s.statuses(report)
	s.Equal(workflow.StatusSkipped, st[mapper.SectionResources])
	s.Equal(workflow.StatusSkipped, st[mapper.SectionBiodiversity])
	s.Equal(workflow.StatusSuccess, st[mapper.SectionWater])

	gov, ok := report.Result(mapper.SectionGovernance)
	s.Require().True(ok)
	s.True(gov.Created)
	s.Equal(gov.ID, report.Updated.SyncIDs.Governance)
}

func (s *WorkflowSuite) TestSaveDraft_CachedIDsSkipCreation() {
	first, err := s.orch.SaveDraft(context.Background(), fullState())
	s.Require().NoError(err)

	s.backend.calls = nil
	second, err := s.orch.SaveDraft(context.Background(), first.Updated)
	s.Require().NoError(err)

	s.Equal([]string{"UpsertGovernance", "UpsertSocial", "UpsertGHG", "WaterBulk", "WasteBulk"}, s.backend.Calls())
	water, _ := second.Result(mapper.SectionWater)
	s.False(water.Created)
	s.Equal(first.Updated.SyncIDs.Water, water.ID)
}

func (s *WorkflowSuite) TestSaveDraft_DoesNotMutateInput() {
	in := fullState()
	_, err := s.orch.SaveDraft(context.Background(), in)
	s.Require().NoError(err)
	s.Empty(in.SyncIDs.Governance)
}

func (s *WorkflowSuite) TestSaveDraft_FailureIsolated() {
	s.backend.failOn["CreateWater"] = &api.APIError{Status: 500, Method: "POST", Path: "/water", Body: "boom"}

	report, err := s.orch.SaveDraft(context.Background(), fullState())
	s.Require().NoError(err, "draft saves stay best-effort")
	s.False(report.OK())
	s.True(report.Partial())

	st := s.statuses(report)
	s.Equal(workflow.StatusFailed, st[mapper.SectionWater])
	s.Equal(workflow.StatusSuccess, st[mapper.SectionWaste], "waste still syncs after water fails")
	s.NotContains(s.backend.Calls(), "WaterBulk")
	s.Contains(report.ErrorSummary(), "water: create: POST /water: 500")
	s.Empty(report.Updated.SyncIDs.Water)

	var apiErr *api.APIError
	s.True(errors.As(report.Err(), &apiErr))

	s.InDelta(1, testutil.ToFloat64(s.metrics.ResourceSyncs.WithLabelValues("save_draft", "water", "failed")), 0)
	s.InDelta(1, testutil.ToFloat64(s.metrics.ResourceSyncs.WithLabelValues("save_draft", "waste", "success")), 0)
	s.InDelta(0, testutil.ToFloat64(s.metrics.MirrorFailures), 0)
}

func (s *WorkflowSuite) TestSaveDraft_MirrorsWithoutAttachmentBytes() {
	st := ghgOnly()
	st.Profile = &wizard.Profile{RegistrationCertificate: &wizard.Attachment{Name: "c.pdf", Data: []byte("%PDF")}}

	report, err := s.orch.SaveDraft(context.Background(), st)
	s.Require().NoError(err)
	s.NotEmpty(report.DraftID)
	s.Empty(report.MirrorError())

	env, err := s.store.Load(context.Background(), draft.DefaultKey)
	s.Require().NoError(err)
	s.Equal(report.DraftID, env.DraftID)
	s.Nil(env.State.Profile.RegistrationCertificate.Data)
}

func (s *WorkflowSuite) TestSaveDraft_Preconditions() {
	_, err := s.orch.SaveDraft(context.Background(), nil)
	s.ErrorIs(err, wizard.ErrNilState)

	_, err = s.orch.SaveDraft(context.Background(), &wizard.State{})
	s.ErrorIs(err, workflow.ErrMissingCompany)

	_, err = workflow.New(nil).SaveDraft(context.Background(), ghgOnly())
	s.ErrorIs(err, workflow.ErrNoBackend)
	s.Empty(s.backend.Calls())
}

func (s *WorkflowSuite) TestSubmit_ValidationBlocksNetwork() {
	st := wizard.New(companyID, 2024)
	report, err := s.orch.Submit(context.Background(), st)
	s.Require().ErrorIs(err, workflow.ErrValidationFailed)
	s.Require().NotNil(report.Validation)
	s.False(report.Validation.Valid)
	s.Empty(s.backend.Calls())
}

func (s *WorkflowSuite) TestSubmit_PartialSyncDoesNotFinalize() {
	s.backend.failOn["UpsertSocial"] = errors.New("timeout")

	report, err := s.orch.Submit(context.Background(), fullState())
	s.Require().ErrorIs(err, workflow.ErrPartialSync)
	s.Require().NotNil(report)
	s.Nil(report.Receipt)
	s.NotContains(s.backend.Calls(), "SubmitDisclosure")

	soc, _ := report.Result(mapper.SectionSocial)
	s.Equal(workflow.StatusFailed, soc.Status)
	s.NotEmpty(report.Updated.SyncIDs.Social, "the created id is kept for the next attempt")
	s.NotEmpty(report.DraftID, "the partial result is still mirrored")
}

func (s *WorkflowSuite) TestSubmit_Success() {
	report, err := s.orch.Submit(context.Background(), fullState())
	s.Require().NoError(err)
	s.True(report.OK())
	s.Require().NotNil(report.Receipt)
	s.Equal("disc-1", report.Receipt.ID)
	s.Equal("SubmitDisclosure", s.backend.Calls()[len(s.backend.Calls())-1])
}

func (s *WorkflowSuite) TestSubmit_DisclosureFailure() {
	s.backend.failOn["SubmitDisclosure"] = errors.New("locked")
	report, err := s.orch.Submit(context.Background(), ghgOnly())
	s.Require().Error(err)
	s.Contains(err.Error(), "submitting disclosure: locked")
	s.True(report.OK())
}

func (s *WorkflowSuite) TestSaveOnboarding() {
	ctx := context.Background()

	err := s.orch.SaveOnboarding(ctx, companyID, &wizard.Profile{Name: "Acme", Sector: "Agriculture"})
	s.Require().NoError(err)
	s.Require().NotNil(s.backend.profile)
	s.Equal("Acme", *s.backend.profile.Name)

	s.ErrorIs(s.orch.SaveOnboarding(ctx, companyID, &wizard.Profile{}), workflow.ErrEmptyProfile)
	s.ErrorIs(s.orch.SaveOnboarding(ctx, "", &wizard.Profile{Name: "Acme"}), workflow.ErrMissingCompany)

	s.backend.failOn["UpdateProfile"] = errors.New("503")
	err = s.orch.SaveOnboarding(ctx, companyID, &wizard.Profile{Name: "Acme"})
	s.ErrorIs(err, workflow.ErrPreferencesNotSaved)
}
