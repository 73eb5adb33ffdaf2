package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig points the save database at a temp directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[save]
path = "` + filepath.Join(dir, "test.db") + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "presets", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPresetsList(t *testing.T) {
	out, err := execute(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "easy")
	assert.Contains(t, out, "normal")
	assert.Contains(t, out, "hard")
	assert.Contains(t, out, "$5,000.00")
}

func TestPresetsList_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "presets", "list")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "easy", resp.Data[0].Name)
}

func TestPresetsValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `name: custom
starting_cash: 300000
starting_reputation: 2800
high_margin_bp: 2000
medium_margin_bp: 900
expiration_min_days: 25
expiration_max_days: 70
deadline_min_days: 2
deadline_max_days: 5
base_arrival_bp: 5000
reputation_arrival_bp: 3500
max_orders_per_day: 3
initial_orders: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "presets", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid preset")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: broken\n"), 0o644))
	_, err = execute(t, "presets", "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSimulate_PrintsSummary(t *testing.T) {
	out, err := execute(t, "simulate", "--days", "3", "--seed", "1", "--preset", "normal")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulated 3 days")
	assert.Contains(t, out, "snapshot hash")
}

func TestSimulate_Deterministic(t *testing.T) {
	hashOf := func(out string) string {
		re := regexp.MustCompile(`snapshot hash:\s+([0-9a-f]{64})`)
		m := re.FindStringSubmatch(out)
		require.Len(t, m, 2, "summary should contain a hex hash")
		return m[1]
	}

	out1, err := execute(t, "simulate", "--days", "10", "--seed", "42", "--preset", "hard")
	require.NoError(t, err)
	out2, err := execute(t, "simulate", "--days", "10", "--seed", "42", "--preset", "hard")
	require.NoError(t, err)

	assert.Equal(t, hashOf(out1), hashOf(out2), "same seed and preset replay to the same hash")
}

func TestSimulate_RejectsBadDays(t *testing.T) {
	_, err := execute(t, "simulate", "--days", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSimulate_UnknownPreset(t *testing.T) {
	_, err := execute(t, "simulate", "--preset", "nightmare")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestRetailers_ListsCatalog(t *testing.T) {
	out, err := execute(t, "retailers")
	require.NoError(t, err)
	assert.Contains(t, out, "Amazon")
	assert.Contains(t, out, "Walmart")
	assert.Contains(t, out, "wholesale $8.00 (face $10.00)")
}

func TestRetailers_FuzzyQuery(t *testing.T) {
	out, err := execute(t, "retailers", "star")
	require.NoError(t, err)
	assert.Contains(t, out, "Starbucks")
	assert.NotContains(t, out, "Amazon")
}

func TestRetailers_NoMatch(t *testing.T) {
	_, err := execute(t, "retailers", "zzzz")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSessionsList_Empty(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := execute(t, "--config", cfgPath, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions")
}

func TestSessionsShow_Missing(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := execute(t, "--config", cfgPath, "sessions", "show", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
