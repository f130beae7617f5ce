package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nativedb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("natives", "", "natives file")
	flags.StringP("output", "o", "", "output format")
	flags.Int("port", 0, "port")
	flags.Bool("no-comments", false, "omit comments")
	flags.Bool("one-line", false, "one-line functions")
	flags.Int("limit", 0, "limit")
	return flags
}

const fileContent = `natives: data/natives.yaml
language: rust
codegen:
  indent: 4
  hashes: true
server:
  port: 9000
  watch: true
search:
  limit: 10
`

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, fileContent)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "data", "natives.yaml"), cfg.NativesPath,
		"natives path should be relative to the config file")
	assert.Equal(t, "rust", cfg.Language)
	assert.Equal(t, "4", cfg.Codegen.Indent)
	assert.True(t, cfg.Codegen.Hashes)
	assert.True(t, cfg.Codegen.Comments, "unset keys keep their defaults")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, 10, cfg.Search.Limit)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "language: lua\n")
	nested := filepath.Join(filepath.Dir(path), "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "lua", cfg.Language)
	assert.Equal(t, "nativedb.yaml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, fileContent)

	t.Setenv("NATIVEDB_SERVER_PORT", "9100")
	t.Setenv("NATIVEDB_CODEGEN_ONE_LINE_FUNCTIONS", "true")
	t.Setenv("NATIVEDB_NATIVES", "env.json")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env var should override config file")
	assert.True(t, cfg.Codegen.OneLineFunctions)
	assert.Equal(t, "env.json", cfg.NativesPath, "env paths are not resolved against the config file")
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, fileContent)
	t.Setenv("NATIVEDB_SERVER_PORT", "9100")

	flags := testFlags()
	require.NoError(t, flags.Set("port", "9200"))
	require.NoError(t, flags.Set("no-comments", "true"))
	require.NoError(t, flags.Set("natives", "flag.json"))
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port, "flag value should override config file and env var")
	assert.False(t, cfg.Codegen.Comments)
	assert.Equal(t, "flag.json", cfg.NativesPath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 10, cfg.Search.Limit, "unset flags do not override the file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: html\ncodegen:\n  indent: wide\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
	assert.Contains(t, err.Error(), "codegen.indent")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "spaces indent", mutate: func(c *Config) { c.Codegen.Indent = "2" }},
		{name: "empty natives", mutate: func(c *Config) { c.NativesPath = "" }, errSubstr: "natives is required"},
		{name: "zero indent", mutate: func(c *Config) { c.Codegen.Indent = "0" }, errSubstr: "codegen.indent"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, errSubstr: "server.port"},
		{name: "negative limit", mutate: func(c *Config) { c.Search.Limit = -1 }, errSubstr: "search.limit"},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "xml" }, errSubstr: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateNatives(t *testing.T) {
	cfg := Defaults()
	cfg.NativesPath = filepath.Join(t.TempDir(), "missing.json")
	err := cfg.ValidateNatives()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--natives")
}

func TestCodegenConfig_Options(t *testing.T) {
	tests := []struct {
		indent string
		want   string
	}{
		{"tab", "\t"},
		{"", "\t"},
		{"2", "  "},
		{"4", "    "},
	}

	for _, tt := range tests {
		t.Run(tt.indent, func(t *testing.T) {
			c := CodegenConfig{Indent: tt.indent, Comments: true, Hashes: true}
			opts := c.Options()
			assert.Equal(t, tt.want, opts.Indent)
			assert.True(t, opts.Comments)
			assert.True(t, opts.Hashes)
			assert.False(t, opts.OneLineFunctions)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"NATIVEDB_NATIVES":                    "natives",
		"NATIVEDB_OUTPUT":                     "output",
		"NATIVEDB_SERVER_PORT":                "server.port",
		"NATIVEDB_CODEGEN_ONE_LINE_FUNCTIONS": "codegen.one_line_functions",
		"NATIVEDB_SEARCH_LIMIT":               "search.limit",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger")

	l := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), l)
	assert.Same(t, l, GetLogger(ctx))
}
