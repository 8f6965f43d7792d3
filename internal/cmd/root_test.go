package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concatfiles/internal/config"
	"concatfiles/internal/errors"
	"concatfiles/internal/testutil"
)

// runRoot executes a fresh root command in dir with the given args.
func runRoot(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	testutil.Chdir(t, dir)

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvOutputFile, config.EnvInputFiles, config.EnvLock, config.EnvLogFormat} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Root Command Tests

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "concatfiles [input...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.Runnable())

	for _, name := range []string{"output", "inputs", "lock", "log-format"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}

	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "version" {
			found = true
		}
	}
	assert.True(t, found, "expected version subcommand to be registered")
}

func TestRoot_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"input.py": "print('hi')\n"})

	stdout, _, err := runRoot(t, dir)

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 1 file(s) into 'output.py'.\n", stdout)
	assert.Equal(t, "--- input.py ---\n\nprint('hi')\n\n\n", readFile(t, filepath.Join(dir, "output.py")))
}

func TestRoot_Environment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.txt": "A", "b.txt": "B"})
	t.Setenv(config.EnvOutputFile, "out.txt")
	t.Setenv(config.EnvInputFiles, "a.txt,b.txt")

	stdout, _, err := runRoot(t, dir)

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 2 file(s) into 'out.txt'.\n", stdout)

	want := "--- a.txt ---\n\nA\n\n--- b.txt ---\n\nB\n\n"
	if diff := cmp.Diff(want, readFile(t, filepath.Join(dir, "out.txt"))); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRoot_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.txt": "A", "b.txt": "B"})
	t.Setenv(config.EnvOutputFile, "env-out.txt")
	t.Setenv(config.EnvInputFiles, "a.txt")

	stdout, _, err := runRoot(t, dir, "--output", "flag-out.txt", "--inputs", "b.txt,a.txt")

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 2 file(s) into 'flag-out.txt'.\n", stdout)
	assert.Equal(t, "--- b.txt ---\n\nB\n\n--- a.txt ---\n\nA\n\n", readFile(t, filepath.Join(dir, "flag-out.txt")))
	assert.NoFileExists(t, filepath.Join(dir, "env-out.txt"))
}

func TestRoot_PositionalInputs(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"x,y.txt": "XY", "z.txt": "Z"})
	t.Setenv(config.EnvInputFiles, "ignored.txt")

	stdout, _, err := runRoot(t, dir, "-o", "out.txt", "x,y.txt", "z.txt")

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 2 file(s) into 'out.txt'.\n", stdout)
	assert.Equal(t, "--- x,y.txt ---\n\nXY\n\n--- z.txt ---\n\nZ\n\n", readFile(t, filepath.Join(dir, "out.txt")))
}

func TestRoot_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgYAML := `output: bundle.py
inputs:
  - two.py
  - one.py
lock: true
`
	testutil.WriteFiles(t, dir, map[string]string{
		"one.py":           "1",
		"two.py":           "2",
		"concatfiles.yaml": cfgYAML,
	})

	stdout, _, err := runRoot(t, dir, "--config", "concatfiles.yaml")

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 2 file(s) into 'bundle.py'.\n", stdout)
	assert.Equal(t, "--- two.py ---\n\n2\n\n--- one.py ---\n\n1\n\n", readFile(t, filepath.Join(dir, "bundle.py")))
}

func TestRoot_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	stdout, _, err := runRoot(t, t.TempDir(), "--config", "missing.yaml")

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, stdout)
}

func TestRoot_MissingInputFails(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.txt": "A"})

	stdout, stderr, err := runRoot(t, dir, "-o", "out.txt", "a.txt", "missing.txt")

	require.Error(t, err)
	assert.True(t, errors.IsFileAccess(err))
	assert.Empty(t, stdout, "no summary on failure")
	assert.Contains(t, stderr, "missing.txt")
}

func TestRoot_OutputAmongInputsRejected(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.txt": "A"})

	stdout, _, err := runRoot(t, dir, "-o", "a.txt", "a.txt")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, stdout)
	assert.Equal(t, "A", readFile(t, filepath.Join(dir, "a.txt")), "input must not be truncated")
}

func TestRoot_InvalidLogFormat(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"input.py": ""})

	_, _, err := runRoot(t, dir, "--log-format", "xml")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.NoFileExists(t, filepath.Join(dir, "output.py"))
}

func TestRoot_VerboseJSONLogs(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"input.py": "x"})
	t.Setenv(config.EnvLogFormat, "json")

	stdout, stderr, err := runRoot(t, dir, "--verbose")

	require.NoError(t, err)
	assert.Equal(t, "Concatenated 1 file(s) into 'output.py'.\n", stdout)
	assert.Contains(t, stderr, `"msg":"Appending file"`)
	assert.Contains(t, stderr, `"input_path":"input.py"`)
	assert.Contains(t, stderr, `"run_id"`)
}

// Version Command Tests

func TestVersionCommand(t *testing.T) {
	original := GetVersionInfo()
	defer SetVersionInfo(original.Version, original.Commit, original.Date, original.BuiltBy)

	SetVersionInfo("1.2.3", "abc123", "2026-01-01", "ci")

	stdout, _, err := runRoot(t, t.TempDir(), "version")

	require.NoError(t, err)
	assert.Equal(t, "concatfiles version 1.2.3\n  commit: abc123\n  built: 2026-01-01\n  built by: ci\n", stdout)
}
