package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/esgsync/internal/attachments"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/wizard"
)

// ErrPreferencesNotSaved is returned by SaveOnboarding when the backend
// rejects or never receives the profile.
var ErrPreferencesNotSaved = errors.New("we couldn't save your preferences")

// ErrEmptyProfile is returned when the onboarding profile has no answers.
var ErrEmptyProfile = errors.New("onboarding profile is empty")

// SaveOnboarding checks attachments and saves the onboarding profile.
// Attachment problems are returned as is; backend failures wrap
// ErrPreferencesNotSaved.
func (o *Orchestrator) SaveOnboarding(ctx context.Context, companyID string, profile *wizard.Profile) error {
	if o.backend == nil {
		return ErrNoBackend
	}
	if companyID == "" {
		return ErrMissingCompany
	}
	if profile != nil {
		uploads := []struct {
			kind attachments.Kind
			file *wizard.Attachment
		}{
			{attachments.RegistrationCertificate, profile.RegistrationCertificate},
			{attachments.PriorReport, profile.PriorReport},
		}
		for _, u := range uploads {
			if u.file == nil {
				continue
			}
			if err := attachments.Check(u.kind, u.file); err != nil {
				return err
			}
		}
	}

	p := mapper.Profile(profile)
	if p == nil {
		return ErrEmptyProfile
	}

	ctx = withOperation(ctx, OpSaveOnboarding, companyID)
	ctx, span := o.tracer.Start(ctx, "workflow.save_onboarding")
	err := o.backend.UpdateProfile(ctx, companyID, p)
	endSpan(span, err)

	status := StatusSuccess
	if err != nil {
		status = StatusFailed
		logFailure(ctx, mapper.SectionProfile, err)
	}
	o.metrics.observeResource(OpSaveOnboarding, mapper.SectionProfile, status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPreferencesNotSaved, err)
	}
	logging.FromContext(ctx).Info().Msg("onboarding profile saved")
	return nil
}
