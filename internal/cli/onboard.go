package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/wizard"
)

var errNoProfile = errors.New("state has no onboarding profile")

// NewOnboardCmd creates the "onboard" command, which saves the onboarding
// profile and its uploads.
func NewOnboardCmd() *cobra.Command {
	var certificate, priorReport string

	cmd := &cobra.Command{
		Use:   "onboard <state.json|->",
		Short: "Save the onboarding profile",
		Long: `Save the onboarding profile of a wizard state to the disclosure API.

--certificate and --prior-report attach local files. Their type and size are
checked before anything is sent.`,
		Example: `  esgsync onboard state.json
  esgsync onboard state.json --certificate ./kbis.pdf --prior-report ./esg-2023.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			state, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			applyCompanyDefaults(state, cfg)
			if state.Profile == nil {
				return errNoProfile
			}
			if certificate != "" {
				if state.Profile.RegistrationCertificate, err = readAttachment(certificate); err != nil {
					return err
				}
			}
			if priorReport != "" {
				if state.Profile.PriorReport, err = readAttachment(priorReport); err != nil {
					return err
				}
			}

			orch, cleanup, err := openOrchestrator(ctx, cfg, false)
			defer cleanup()
			if err != nil {
				return err
			}
			companyID := stateCompany(state, cfg)
			if err := orch.SaveOnboarding(ctx, companyID, state.Profile); err != nil {
				return err
			}

			logging.FromContext(ctx).Info().Str("company_id", companyID).Msg("onboarding profile saved")
			cmd.Println("Onboarding profile saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&certificate, "certificate", "", "Registration certificate to attach (pdf, png, jpg)")
	cmd.Flags().StringVar(&priorReport, "prior-report", "", "Prior ESG report to attach (pdf, docx, xlsx)")
	return cmd
}

// readAttachment loads a local file as an upload.
func readAttachment(path string) (*wizard.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return &wizard.Attachment{
		Name:     filepath.Base(path),
		MIMEType: mime,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}
