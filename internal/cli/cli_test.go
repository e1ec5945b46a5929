package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const validSrc = `graph @adder(%a: uint<8>, %b: uint<8>) {
  %0 = firrtl.add %a, %b : uint<9>
}
`

const invalidSrc = `graph @bad(%a: uint<8>, %b: uint<8>) {
  %0 = firrtl.add %a, %b : uint<4>
  %1 = firrtl.mul %a, %b : uint<4>
}
`

func TestParseCommand_Canonicalizes(t *testing.T) {
	path := writeFixture(t, "in.sigil",
		"graph   @adder( %a:uint<8>,%b : uint<8> ){\n%0=firrtl.add %a,%b:uint<9>\n}\n")
	stdout, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Equal(t, validSrc, stdout)
}

func TestParseCommand_SyntaxError(t *testing.T) {
	path := writeFixture(t, "in.sigil", "graph @g( ???\n")
	stdout, _, err := execute(t, "parse", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E100]")
}

func TestParseCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, "parse", filepath.Join(t.TempDir(), "nope.sigil"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerifyCommand_ValidJSON(t *testing.T) {
	path := writeFixture(t, "in.sigil", validSrc)
	stdout, _, err := execute(t, "verify", "--format", "json", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, float64(1), data["graphs"])
}

func TestVerifyCommand_CollectsAllErrors(t *testing.T) {
	path := writeFixture(t, "in.sigil", invalidSrc)
	stdout, _, err := execute(t, "verify", "--format", "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E300", resp.Error.Code)
	details := resp.Error.Details.([]interface{})
	assert.Len(t, details, 2, "both ill-typed nodes reported")
}

func TestVerifyCommand_Cache(t *testing.T) {
	path := writeFixture(t, "in.sigil", validSrc)
	cache := filepath.Join(t.TempDir(), "cache.db")

	stdout, _, err := execute(t, "verify", "--format", "json", "--cache", cache, path)
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Nil(t, data["cached"], "first run verifies fresh")

	stdout, _, err = execute(t, "verify", "--format", "json", "--cache", cache, path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["cached"], "second run hits the cache")
}

func TestCanonCommand_FoldsConstants(t *testing.T) {
	src := `graph @fold() {
  %0 = firrtl.constant {value = 3, type = uint<4>} : uint<4>
  %1 = firrtl.constant {value = 4, type = uint<4>} : uint<4>
  %2 = firrtl.add %0, %1 : uint<5>
}
`
	path := writeFixture(t, "in.sigil", src)
	stdout, _, err := execute(t, "canon", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "%2 = firrtl.constant {value = 7, type = uint<5>} : uint<5>")
	assert.NotContains(t, stdout, "firrtl.add")
}

func TestCanonCommand_OutputFile(t *testing.T) {
	path := writeFixture(t, "in.sigil", validSrc)
	out := filepath.Join(t.TempDir(), "out.sigil")
	stdout, _, err := execute(t, "canon", "-o", out, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	written, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, validSrc, string(written))
}

func TestCanonCommand_ConfigDisablesFold(t *testing.T) {
	src := `graph @fold() {
  %0 = firrtl.constant {value = 3, type = uint<4>} : uint<4>
  %1 = firrtl.constant {value = 4, type = uint<4>} : uint<4>
  %2 = firrtl.add %0, %1 : uint<5>
}
`
	path := writeFixture(t, "in.sigil", src)
	cfg := writeFixture(t, "canon.yaml", "rules:\n  fold: false\n")
	stdout, _, err := execute(t, "canon", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "firrtl.add")
}

func TestCanonCommand_RefusesInvalidInput(t *testing.T) {
	path := writeFixture(t, "in.sigil", invalidSrc)
	stdout, _, err := execute(t, "canon", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "E300")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	path := writeFixture(t, "in.sigil", validSrc)
	_, _, err := execute(t, "parse", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVerboseGoesToStderr(t *testing.T) {
	path := writeFixture(t, "in.sigil", validSrc)
	stdout, stderr, err := execute(t, "verify", "--format", "json", "-v", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Parsed 1 graph(s)")
	var resp CLIResponse
	assert.NoError(t, json.Unmarshal([]byte(stdout), &resp), "verbose output must not corrupt JSON")
}
