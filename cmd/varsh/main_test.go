package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runForTest(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeRows(t *testing.T, s string) []map[string]string {
	t.Helper()
	var rows []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(s), &rows))
	return rows
}

func TestRunExecute(t *testing.T) {
	code, stdout, stderr := runForTest(t, "",
		"--format=yaml",
		"--set", "retries=5",
		"-e", "SET timeout = '90s'\nSET tags = 'b, a, b'\nSHOW VARIABLE timeout\nSHOW VARIABLE retries\nSHOW VARIABLE tags")
	require.Equal(t, exitCodeSuccess, code, stderr)

	assert.Equal(t, []map[string]string{
		{"timeout": "1m30s"},
		{"retries": "5"},
		{"tags": "a, b"},
	}, decodeRows(t, stdout))
}

func TestTagsRoundTrip(t *testing.T) {
	code, stdout, stderr := runForTest(t, "", "--format=yaml",
		"-e", "SET tags = 'pie, i, like'\nSHOW VARIABLE tags")
	require.Equal(t, exitCodeSuccess, code, stderr)
	shown := decodeRows(t, stdout)[0]["tags"]
	assert.Equal(t, "i, like, pie", shown)

	code, stdout, stderr = runForTest(t, "", "--format=yaml",
		"-e", "SET tags = '"+shown+"'\nSHOW VARIABLE tags")
	require.Equal(t, exitCodeSuccess, code, stderr)
	assert.Equal(t, shown, decodeRows(t, stdout)[0]["tags"])
}

func TestRunStdin(t *testing.T) {
	code, stdout, stderr := runForTest(t, "SET sample_ratio = 0.25;\nSHOW VARIABLE sample_ratio;\nSET sample_ratio = NULL;\nSHOW VARIABLE sample_ratio;\n")
	require.Equal(t, exitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, "0.25")
	assert.Contains(t, stdout, "NULL")
	assert.Empty(t, stderr)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.sql")
	require.NoError(t, os.WriteFile(path, []byte("SET verbose = TRUE;\nSHOW VARIABLE verbose;\n"), 0o644))

	code, stdout, _ := runForTest(t, "", "-f", path, "--format=yaml")
	require.Equal(t, exitCodeSuccess, code)
	assert.Equal(t, []map[string]string{{"verbose": "true"}}, decodeRows(t, stdout))
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantStderr string
	}{
		{"statement error", "SET user = 'root'\n", nil, "ERROR: user: write failed: variable is read-only"},
		{"unknown set", "", []string{"--set", "nope=1"}, "--set: unknown variable: nope"},
		{"malformed set", "", []string{"--set", "retries=many"}, `--set: retries: invalid int value "many"`},
		{"bad log level", "", []string{"--log-level", "loud"}, "invalid --log-level"},
		{"execute and file", "", []string{"-e", "HELP", "-f", "x.sql"}, "mutually exclusive"},
		{"missing file", "", []string{"-f", "/nonexistent/x.sql"}, "Read from file /nonexistent/x.sql failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runForTest(t, tt.stdin, tt.args...)
			assert.Equal(t, exitCodeError, code)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestRunDebugLogging(t *testing.T) {
	code, _, stderr := runForTest(t, "SHOW VARIABLES\n", "--log-level=debug")
	require.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, stderr, "variable registered")
	assert.Contains(t, stderr, "execute statement")
}

func TestRegisterVariables(t *testing.T) {
	_, _, stderr := runForTest(t, "", "--help")
	assert.Contains(t, stderr, "--execute")

	code, stdout, _ := runForTest(t, "HELP VARIABLES\n", "--format=yaml")
	require.Equal(t, exitCodeSuccess, code)

	names := make([]string, 0)
	for _, row := range decodeRows(t, stdout) {
		names = append(names, row["name"])
	}
	assert.Equal(t, []string{"output_format", "prompt", "retries", "sample_ratio", "separator", "tags", "timeout", "user", "verbose", "version"}, names)
}
