package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CARDSTMT_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd_MissingFileJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "parse", "--format", "json", "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 statement(s) could not be parsed")

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.True(t, strings.HasPrefix(got["error"], "Error reading PDF: "), got["error"])
}

func TestParseCmd_TextReport(t *testing.T) {
	isolate(t)

	out, err := run(t, "parse", "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, out, "Processing file: missing.pdf")
	assert.Contains(t, out, "FAILED: Error reading PDF: ")
}

func TestParseCmd_OutputFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "result.csv")
	_, err := run(t, "parse", "--format", "csv", "--output", path, "missing.pdf")
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.True(t, strings.HasPrefix(string(data), "file,field,value,numeric\n"))
	assert.Contains(t, string(data), "missing.pdf,error,")
}

func TestParseCmd_UnsupportedFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, "parse", "--format", "xml", "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestParseCmd_RequiresArgs(t *testing.T) {
	isolate(t)

	_, err := run(t, "parse")
	assert.Error(t, err)
}

func TestRootCmd_BadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("CARDSTMT_LOG_FORMAT", "xml")

	_, err := run(t, "parse", "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCmd_Version(t *testing.T) {
	isolate(t)

	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
