package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/attackcsv"
	"github.com/bjaus/attackcsv/internal/cli"
)

const bundleJSON = `{
	"type": "bundle",
	"id": "bundle--1",
	"spec_version": "2.1",
	"objects": [
		{
			"type": "attack-pattern",
			"id": "attack-pattern--1",
			"created": "2020-01-30T14:24:34.977Z",
			"modified": "2022-04-19T23:40:07.512Z",
			"name": "Setuid and Setgid",
			"description": "An adversary may abuse <code>setuid</code>.",
			"external_references": [{"source_name": "mitre-attack", "external_id": "T1548.001"}]
		},
		{"type": "malware", "id": "malware--1", "name": "Net Crawler"},
		{"id": "orphan"}
	]
}`

// run executes the command tree with an isolated config directory and
// returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	input := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(input, []byte(bundleJSON), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--input", input, "--cache-dir", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestConvert(t *testing.T) {
	out := t.TempDir()
	_, err := run(t, "--output-dir", out, "--attack-version", "v9.0", "--attack-id")
	require.NoError(t, err)

	dir := filepath.Join(out, "v9.0")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"attack-pattern-w-id.csv", "malware-w-id.csv"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "attack-pattern-w-id.csv"))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\r\n")
	assert.Equal(t, `"type","id","created","modified","mitre_attack_id","name","description","external_references"`, lines[0])
	assert.Contains(t, lines[1], `"T1548.001"`)
	assert.Contains(t, lines[1], `"An adversary may abuse `+"`setuid`"+`."`)
}

func TestConvertFormat(t *testing.T) {
	out := t.TempDir()
	_, err := run(t, "--output-dir", out, "--format", "html")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "v11.3", "attack-pattern.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<code>setuid</code>")
}

func TestConvertInvalidConfig(t *testing.T) {
	_, err := run(t, "--output-dir", t.TempDir(), "--workers", "0", "--domain", "pre-attack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be greater than 0")
	assert.Contains(t, err.Error(), `domain "pre-attack"`)
}

func TestConvertRejectsArgs(t *testing.T) {
	_, err := run(t, "--output-dir", t.TempDir(), "extra")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	got, err := run(t, "summary", "--border", "none")
	require.NoError(t, err)
	want := []string{
		"TYPE            ROWS  COLUMNS",
		"--------------  ----  -------",
		"attack-pattern     1        7",
		"malware            1        5",
		"--------------  ----  -------",
		"total              2",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", got)
}

func TestSummaryBadBorder(t *testing.T) {
	_, err := run(t, "summary", "--border", "dotted")
	assert.ErrorIs(t, err, attackcsv.ErrInvalidBorder)
}

func TestShow(t *testing.T) {
	tests := map[string]string{
		"attack id": "t1548.001",
		"stix id":   "attack-pattern--1",
	}
	for name, id := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := run(t, "show", id, "--style", "notty")
			require.NoError(t, err)
			assert.Contains(t, got, "Setuid and Setgid")
			assert.Contains(t, got, "T1548.001")
			assert.Contains(t, got, "setuid")
		})
	}
}

func TestShowNotFound(t *testing.T) {
	_, err := run(t, "show", "T9999", "--style", "notty")
	assert.ErrorIs(t, err, cli.ErrNotFound)
}

func TestShowBadStyle(t *testing.T) {
	_, err := run(t, "show", "T1548.001", "--style", "no-such-style")
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	got, err := run(t, "formats")
	require.NoError(t, err)
	for _, f := range attackcsv.Formats() {
		assert.Contains(t, got, string(f))
	}
	assert.Contains(t, got, "go-template=")
}

func TestUnsupportedVersion(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"spec_version": "1.0", "objects": []}`), 0o644))

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--output-dir", t.TempDir()})
	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, attackcsv.ErrUnsupportedVersion)
}
