package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/api"
	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/draft"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/workflow"
)

// syncParams holds the flags shared by "sync draft" and "sync submit".
type syncParams struct {
	writeBack bool
	noMirror  bool
}

// openOrchestrator builds a workflow orchestrator from cfg. The returned
// cleanup closes the draft store and is always safe to call.
func openOrchestrator(ctx context.Context, cfg *config.Config, mirror bool) (*workflow.Orchestrator, func(), error) {
	client, err := api.New(cfg.APIClientConfig())
	if err != nil {
		return nil, func() {}, fmt.Errorf("configuring API client: %w", err)
	}

	opts := []workflow.Option{workflow.WithMetrics(workflow.NewMetrics(prometheus.NewRegistry()))}
	cleanup := func() {}
	if mirror {
		store, openErr := draft.Open(ctx, cfg.DraftStoreConfig())
		if openErr != nil {
			// The mirror is optional; sync still runs without it.
			logging.FromContext(ctx).Warn().Err(openErr).Str("backend", cfg.Draft.Backend).
				Msg("draft mirror unavailable")
		} else {
			opts = append(opts, workflow.WithDraftStore(store, cfg.DraftStoreConfig().StorageKey()))
			cleanup = func() {
				if closeErr := store.Close(); closeErr != nil {
					logging.FromContext(ctx).Debug().Err(closeErr).Msg("closing draft store")
				}
			}
		}
	}
	return workflow.New(client, opts...), cleanup, nil
}

// NewSyncDraftCmd creates the "sync draft" subcommand.
func NewSyncDraftCmd() *cobra.Command {
	var params syncParams

	cmd := &cobra.Command{
		Use:   "draft <state.json>",
		Short: "Save every section to the disclosure API as a draft",
		Long: `Save a wizard state as a draft.

Each non-blank section is created or upserted in sync order. A failed section
does not stop the others. Validation runs in draft mode and is reported but
never blocks the save. The state is mirrored to the local draft store.`,
		Example: `  esgsync sync draft state.json
  esgsync sync draft state.json --write-back --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args[0], workflow.OpSaveDraft, params)
		},
	}
	addSyncFlags(cmd, &params)
	return cmd
}

// NewSyncSubmitCmd creates the "sync submit" subcommand. It exits with
// ExitCodeCheckFailed when validation fails or a section did not sync.
func NewSyncSubmitCmd() *cobra.Command {
	var params syncParams

	cmd := &cobra.Command{
		Use:   "submit <state.json>",
		Short: "Validate, sync and submit the disclosure",
		Long: `Submit a wizard state.

The state is validated in submit mode first; nothing is sent when it has
errors. Every section is then synced, and the disclosure is submitted only
when all of them succeeded.`,
		Example: `  esgsync sync submit state.json
  esgsync sync submit state.json --write-back`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args[0], workflow.OpSubmit, params)
		},
	}
	addSyncFlags(cmd, &params)
	return cmd
}

func addSyncFlags(cmd *cobra.Command, params *syncParams) {
	cmd.Flags().BoolVar(&params.writeBack, "write-back", false,
		"Rewrite the state file with the record ids returned by the API")
	cmd.Flags().BoolVar(&params.noMirror, "no-mirror", false, "Do not mirror the state to the local draft store")
	addOutputFlag(cmd)
}

func runSync(cmd *cobra.Command, path, operation string, params syncParams) error {
	ctx := cmd.Context()
	cfg := configFrom(ctx)
	format, err := outputFormat(cmd, cfg)
	if err != nil {
		return err
	}
	if params.writeBack && path == stdinPath {
		return errors.New("--write-back needs a state file, not stdin")
	}

	state, err := readState(cmd, path)
	if err != nil {
		return err
	}
	applyCompanyDefaults(state, cfg)

	orch, cleanup, err := openOrchestrator(ctx, cfg, !params.noMirror)
	defer cleanup()
	if err != nil {
		return err
	}

	var report *workflow.Report
	var runErr error
	if operation == workflow.OpSubmit {
		report, runErr = orch.Submit(ctx, state)
	} else {
		report, runErr = orch.SaveDraft(ctx, state)
	}
	if report == nil {
		return runErr
	}

	if format == config.FormatJSON {
		err = writeJSON(cmd.OutOrStdout(), report)
	} else {
		err = renderReport(cmd.OutOrStdout(), report, isWriterTerminal(cmd.OutOrStdout()))
	}
	if err != nil {
		return err
	}

	if params.writeBack && report.Updated != nil && len(report.Succeeded()) > 0 {
		if err := writeStateFile(path, report.Updated); err != nil {
			return err
		}
		logging.FromContext(ctx).Info().Str("path", path).Msg("state file updated with record ids")
	}

	switch {
	case errors.Is(runErr, workflow.ErrValidationFailed), errors.Is(runErr, workflow.ErrPartialSync):
		return &ExitError{Code: ExitCodeCheckFailed, Reason: runErr.Error(), Err: runErr}
	case runErr != nil:
		return runErr
	case !report.OK():
		return &ExitError{Code: ExitCodeCheckFailed, Reason: report.ErrorSummary(), Err: report.Err()}
	}
	return nil
}

// renderReport prints a sync report: one row per section, then the
// validation summary, receipt and mirror status.
func renderReport(w io.Writer, r *workflow.Report, styled bool) error {
	if r.Validation != nil && (r.Validation.HasErrors() || len(r.Validation.Warnings) > 0) {
		if err := renderValidation(w, *r.Validation, styled); err != nil {
			return err
		}
	}

	if len(r.Results) > 0 {
		rows := make([][]string, 0, len(r.Results))
		for _, res := range r.Results {
			id := res.ID
			if res.Created {
				id += " (new)"
			}
			rows = append(rows, []string{res.Resource, string(res.Status), id, res.Error})
		}
		if _, err := fmt.Fprintln(w, resultsTable(rows, styled).Render()); err != nil {
			return err
		}
	}

	var notes []string
	if r.Receipt != nil {
		notes = append(notes, fmt.Sprintf("Submitted: receipt %s (%s)", r.Receipt.ID, r.Receipt.Status))
	}
	if r.DraftID != "" {
		notes = append(notes, "Draft mirrored as "+r.DraftID)
	}
	if msg := r.MirrorError(); msg != "" {
		notes = append(notes, "Draft mirror failed: "+msg)
	}
	if len(notes) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(notes, "\n"))
	return err
}

func resultsTable(rows [][]string, styled bool) *table.Table {
	t := table.New().Headers("SECTION", "STATUS", "ID", "ERROR").Rows(rows...)
	if !styled {
		return t.Border(lipgloss.ASCIIBorder())
	}
	return t.Border(lipgloss.RoundedBorder()).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headStyle
		}
		if col != 1 {
			return cellStyle
		}
		switch workflow.Status(rows[row][1]) {
		case workflow.StatusFailed:
			return errStyle.Padding(0, 1)
		case workflow.StatusSuccess:
			return okStyle.Padding(0, 1)
		default:
			return warnStyle.Padding(0, 1)
		}
	})
}
