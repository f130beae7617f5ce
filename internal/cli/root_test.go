package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nativedb/nativedb/internal/cli/config"
	clitestutil "github.com/nativedb/nativedb/internal/cli/testutil"
	"github.com/nativedb/nativedb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a full command line in an isolated working directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Generate(t *testing.T) {
	t.Chdir(t.TempDir())
	natives := testutil.WriteSample(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "lua with comments",
			args: []string{"generate", "GET_PLAYER_PED", "-l", "lua"},
			expected: `-- Gets the ped for the specified player.
-- Use PLAYER_ID() for the local player.
function GetPlayerPed(player)
	return Citizen.InvokeNative(0x43A66C31C68491C0, player)
end
`,
		},
		{
			name:     "cpp one-line by hash",
			args:     []string{"gen", "0x4f8644af03d0e0d6", "--one-line"},
			expected: "static Player PLAYER_ID() { return invoke<Player>(0x4F8644AF03D0E0D6); }\n",
		},
		{
			name:     "namespace without unnamed",
			args:     []string{"generate", "misc", "--namespace", "--unnamed=false"},
			expected: "#pragma once\n\nnamespace MISC\n{\n}\n",
		},
		{
			name:     "indent and no comments",
			args:     []string{"generate", "GET_PLAYER_PED", "-l", "lua", "--no-comments", "--indent", "2"},
			expected: "function GetPlayerPed(player)\n  return Citizen.InvokeNative(0x43A66C31C68491C0, player)\nend\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--natives", natives, "-o", "text"}, tt.args...)
			out, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRoot_GenerateJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	natives := testutil.WriteSample(t)

	out, _, err := run(t, "--natives", natives, "-o", "json", "generate", "PLAYER_ID", "-l", "rs")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "rust", got["language"])
	assert.Equal(t, "PLAYER_ID", got["native"])
	assert.Equal(t, "PLAYER", got["namespace"])
	assert.Contains(t, got["code"], "fn player_id()")
}

func TestRoot_Queries(t *testing.T) {
	t.Chdir(t.TempDir())
	natives := testutil.WriteSample(t)

	t.Run("search", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "json", "search", "player")
		require.NoError(t, err)
		var hits []map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &hits))
		require.Len(t, hits, 2)
		assert.Equal(t, "PLAYER_ID", hits[0]["name"])
		assert.Equal(t, "Ped GET_PLAYER_PED(Player player)", hits[1]["signature"])
	})

	t.Run("search limit", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "json", "search", "player", "--limit", "1")
		require.NoError(t, err)
		var hits []map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &hits))
		assert.Len(t, hits, 1)
	})

	t.Run("search markdown", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "markdown", "search", "get", "player", "ped")
		require.NoError(t, err)
		assert.Contains(t, out, "# Search: get player ped (1 results)")
		assert.Contains(t, out, "GET_PLAYER_PED")
		clitestutil.AssertNoANSI(t, out)
	})

	t.Run("show", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "markdown", "show", "GET_PLAYER_PED")
		require.NoError(t, err)
		assert.Contains(t, out, "# GET_PLAYER_PED")
		assert.Contains(t, out, "- **JHash**: 0x43A66C31")
		assert.Contains(t, out, "```c\nPed GET_PLAYER_PED(Player player);\n```")
		assert.Contains(t, out, "## Description")
		clitestutil.AssertValidMarkdown(t, out)
	})

	t.Run("stats", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "json", "stats")
		require.NoError(t, err)
		var stats map[string]int
		require.NoError(t, json.Unmarshal([]byte(out), &stats))
		assert.Equal(t, 4, stats["natives"])
		assert.Equal(t, 3, stats["namespaces"])
	})

	t.Run("types", func(t *testing.T) {
		out, _, err := run(t, "--natives", natives, "-o", "json", "types", "float")
		require.NoError(t, err)
		var users []map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &users))
		assert.Len(t, users, 2)
	})

	t.Run("languages", func(t *testing.T) {
		out, _, err := run(t, "-o", "json", "languages")
		require.NoError(t, err)
		var langs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &langs))
		assert.Len(t, langs, 6)
	})
}

func TestRoot_Export(t *testing.T) {
	t.Chdir(t.TempDir())
	natives := testutil.WriteSample(t)
	dir := filepath.Join(t.TempDir(), "out")

	out, _, err := run(t, "--natives", natives, "-o", "json", "export", dir, "-l", "all", "--jobs", "3")
	require.NoError(t, err)

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	assert.Len(t, files, 18)

	data, err := os.ReadFile(filepath.Join(dir, "python", "player.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "def player_id()")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(testutil.WriteSample(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "natives.json"), data, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nativedb.yaml"), []byte(`natives: natives.json
language: python
output: text
codegen:
  one_line_functions: true
`), 0600))
	t.Chdir(dir)

	out, errOut, err := run(t, "-v", "generate", "PLAYER_ID")
	require.NoError(t, err)
	assert.Equal(t, "def player_id() -> int: return invoke(0x4F8644AF03D0E0D6)\n", out)
	assert.Contains(t, errOut, "Using config file:")
	assert.Contains(t, errOut, "natives loaded", "verbose enables debug logs")
}

func TestRoot_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	natives := testutil.WriteSample(t)

	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{name: "missing natives file", args: []string{"--natives", "missing.json", "stats"}, errSubstr: "--natives"},
		{name: "unknown native", args: []string{"--natives", natives, "show", "GET_PLAYER"}, errSubstr: "nativedb search GET_PLAYER"},
		{name: "unknown language", args: []string{"--natives", natives, "generate", "PLAYER_ID", "-l", "cobol"}, errSubstr: "unknown language"},
		{name: "unknown type", args: []string{"--natives", natives, "types", "Vector3"}, errSubstr: "not found"},
		{name: "invalid output", args: []string{"--natives", natives, "-o", "xml", "stats"}, errSubstr: "output must be one of"},
		{name: "invalid indent", args: []string{"--natives", natives, "generate", "PLAYER_ID", "--indent", "wide"}, errSubstr: "codegen.indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestRoot_VersionAndCompletion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nativedb v"+Version)

	out, _, err = run(t, "completion", "bash")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "nativedb"), "completion script should name the binary")
}

func TestContextFallbacks(t *testing.T) {
	ctx := t.Context()
	assert.Equal(t, config.Defaults(), GetConfig(ctx))
	assert.NotNil(t, GetRenderer(ctx))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	newLogger(&buf, false).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}
