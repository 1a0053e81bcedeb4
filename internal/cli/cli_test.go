package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/cli"
	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/wizard"
)

const companyID = "3f1c2b9a-7d4e-4a51-9b8c-0e2d6f5a4c11"

func f(v float64) *float64 { return &v }

// setupCLITest isolates the config home and keeps logs quiet.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, filepath.Join(t.TempDir(), ".esgsync"))
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvCompanyID, "")
	t.Setenv(config.EnvDraftBackend, "")
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func ghgState() *wizard.State {
	s := wizard.New(companyID, 2024)
	s.GHG = &wizard.GHGInventory{Scope1TCO2e: f(100), Scope2TCO2e: f(50)}
	return s
}

func writeState(t *testing.T, s *wizard.State) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

// fakeAPI records requests and answers every call with an id.
type fakeAPI struct {
	mu    sync.Mutex
	paths []string
	fail  string
}

func newFakeAPI(t *testing.T, fail string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{fail: fail}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		api.mu.Lock()
		api.paths = append(api.paths, r.Method+" "+r.URL.Path)
		api.mu.Unlock()

		if api.fail != "" && strings.Contains(r.URL.Path, api.fail) {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/disclosures/submit") {
			_, _ = io.WriteString(w, `{"id":"disc-1","status":"submitted"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"ghg-2024"}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.EnvAPIURL, srv.URL)
	t.Setenv(config.EnvAPIToken, "secret-token")
	return api, srv
}

func (a *fakeAPI) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.paths...)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"exit error", &cli.ExitError{Code: cli.ExitCodeCheckFailed}, 2},
		{"wrapped exit error", errors.Join(errors.New("x"), &cli.ExitError{Code: 3}), 3},
		{"zero code", &cli.ExitError{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	inner := errors.New("inner")
	assert.Equal(t, "reason", (&cli.ExitError{Code: 2, Reason: "reason", Err: inner}).Error())
	assert.Equal(t, "inner", (&cli.ExitError{Code: 2, Err: inner}).Error())
	assert.Equal(t, "exit status 4", (&cli.ExitError{Code: 4}).Error())
	assert.ErrorIs(t, &cli.ExitError{Code: 2, Err: inner}, inner)
}

func TestMapCmd(t *testing.T) {
	setupCLITest(t)
	path := writeState(t, ghgState())

	t.Run("single section", func(t *testing.T) {
		out, err := run(t, "map", path, "--section", "ghg")
		require.NoError(t, err)
		var built map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &built), out)
		record, ok := built["record"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 100, record["scope1_tCO2e"], 0)
	})

	t.Run("all sections", func(t *testing.T) {
		out, err := run(t, "map", path)
		require.NoError(t, err)
		var all []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &all), out)
		assert.Len(t, all, 8)
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := run(t, "map", path, "--section", "payroll")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "map", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening state file")
	})
}

func TestValidateCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("valid draft", func(t *testing.T) {
		out, err := run(t, "validate", writeState(t, ghgState()))
		require.NoError(t, err)
		assert.Contains(t, out, "draft validation passed")
	})

	t.Run("submit without company exits 2", func(t *testing.T) {
		s := ghgState()
		s.CompanyID = ""
		out, err := run(t, "validate", writeState(t, s), "--mode", "submit", "--output", "json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitCodeCheckFailed, cli.ExitCode(err))

		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res), out)
		assert.Equal(t, false, res["valid"])
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := run(t, "validate", writeState(t, ghgState()), "--mode", "final")
		require.Error(t, err)
		assert.Equal(t, 1, cli.ExitCode(err))
	})

	t.Run("bad output format", func(t *testing.T) {
		_, err := run(t, "validate", writeState(t, ghgState()), "--output", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})
}

func TestDashboardCmd(t *testing.T) {
	setupCLITest(t)

	out, err := run(t, "dashboard", writeState(t, ghgState()), "--output", "json")
	require.NoError(t, err)
	var k map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &k), out)
	emissions, ok := k["emissions"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 150, emissions["total_tco2e"], 1e-9)

	out, err = run(t, "dashboard", writeState(t, ghgState()))
	require.NoError(t, err)
	assert.Contains(t, out, "ESG dashboard 2024")
	assert.NotContains(t, out, "\x1b[")
}

func TestBridgeMatchCmd(t *testing.T) {
	setupCLITest(t)

	s := ghgState()
	s.Profile = &wizard.Profile{
		Sector: "Technology", Region: "Europe", Currency: "EUR",
		FundingNeed: f(1_000_000), ESGFocus: []string{"Climate"},
	}
	path := writeState(t, s)

	out, err := run(t, "bridge", "match", path, "--limit", "2", "--output", "json")
	require.NoError(t, err)
	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &matches), out)
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 2)

	out, err = run(t, "bridge", "match", path)
	require.NoError(t, err)
	assert.Contains(t, out, "INVESTOR")

	_, err = run(t, "bridge", "match", path, "--limit", "-1")
	require.Error(t, err)

	_, err = run(t, "bridge", "match", path, "--directory", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
}

func TestSyncSubmitCmd(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvDraftBackend, "memory")
	api, _ := newFakeAPI(t, "")
	path := writeState(t, ghgState())

	out, err := run(t, "sync", "submit", path, "--write-back")
	require.NoError(t, err, out)
	assert.Contains(t, out, "receipt disc-1")

	calls := api.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "PUT /companies/"+companyID+"/environment/ghg/upsert", calls[0])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	updated, err := wizard.Load(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "ghg-2024", updated.SyncIDs.GHG)
}

func TestSyncSubmitCmd_PartialFailureExits2(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvDraftBackend, "memory")
	api, _ := newFakeAPI(t, "/ghg/")

	out, err := run(t, "sync", "submit", writeState(t, ghgState()), "--output", "json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCodeCheckFailed, cli.ExitCode(err))
	assert.Contains(t, out, `"status": "failed"`)
	for _, c := range api.calls() {
		assert.NotContains(t, c, "/disclosures/submit")
	}
}

func TestSyncSubmitCmd_InvalidStateSendsNothing(t *testing.T) {
	setupCLITest(t)
	api, _ := newFakeAPI(t, "")

	_, err := run(t, "sync", "submit", writeState(t, wizard.New(companyID, 2024)), "--no-mirror")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCodeCheckFailed, cli.ExitCode(err))
	assert.Empty(t, api.calls())
}

func TestSyncDraft_MirrorsToFileStore(t *testing.T) {
	setupCLITest(t)
	newFakeAPI(t, "")
	path := writeState(t, ghgState())

	out, err := run(t, "sync", "draft", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Draft mirrored as")

	out, err = run(t, "draft", "show", "--output", "json")
	require.NoError(t, err)
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	assert.NotEmpty(t, env["draftId"])

	out, err = run(t, "draft", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = run(t, "draft", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No draft saved")
}

func TestSync_WriteBackRejectsStdin(t *testing.T) {
	setupCLITest(t)
	newFakeAPI(t, "")
	_, err := run(t, "sync", "draft", "-", "--write-back")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--write-back")
}

func TestOnboardCmd(t *testing.T) {
	setupCLITest(t)
	api, _ := newFakeAPI(t, "")

	s := ghgState()
	s.Profile = &wizard.Profile{Name: "Acme", Sector: "Technology"}
	path := writeState(t, s)

	cert := filepath.Join(t.TempDir(), "kbis.png")
	require.NoError(t, os.WriteFile(cert, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	out, err := run(t, "onboard", path, "--certificate", cert)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Onboarding profile saved.")
	assert.Equal(t, []string{"PUT /companies/" + companyID + "/profile"}, api.calls())

	bad := filepath.Join(t.TempDir(), "kbis.exe")
	require.NoError(t, os.WriteFile(bad, []byte("MZ"), 0o600))
	_, err = run(t, "onboard", path, "--certificate", bad)
	require.Error(t, err)
	assert.Len(t, api.calls(), 1)

	_, err = run(t, "onboard", writeState(t, ghgState()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no onboarding profile")
}

func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")

	dir := filepath.Join(projectRoot, ".esgsync")
	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(gitignore))

	_, err = run(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Global(t *testing.T) {
	home := setupCLITest(t)

	out, err := run(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, "config.yaml"))

	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.FormatTable, loaded.Output.DefaultFormat)
}

func TestConfigShow_RedactsSecrets(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvAPIURL, "https://api.example.com")
	t.Setenv(config.EnvAPIToken, "secret-token")

	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: https://api.example.com")
	assert.Contains(t, out, "<redacted>")
	assert.NotContains(t, out, "secret-token")
}

func TestRoot_InvalidConfig(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCompanyID, "not-a-uuid")
	_, err := run(t, "dashboard", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
