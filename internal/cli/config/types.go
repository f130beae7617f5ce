// Package config provides configuration management for the nativedb CLI.
//
// Values are layered from built-in defaults, a nativedb.yaml file,
// NATIVEDB_* environment variables and explicitly set command-line flags,
// in increasing order of precedence.
package config

import (
	"strconv"
	"strings"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
)

// CodegenConfig holds the options passed to generators.
type CodegenConfig struct {
	// Indent is "tab" or a number of spaces.
	Indent           string `koanf:"indent"`
	Comments         bool   `koanf:"comments"`
	Hashes           bool   `koanf:"hashes"`
	OneLineFunctions bool   `koanf:"one_line_functions"`
	Unnamed          bool   `koanf:"unnamed"`
}

// IndentUnit returns the indent string Indent describes.
// Invalid values fall back to a tab; Validate reports them.
func (c CodegenConfig) IndentUnit() string {
	if n, err := strconv.Atoi(strings.TrimSpace(c.Indent)); err == nil && n > 0 {
		return strings.Repeat(" ", n)
	}
	return codegen.DefaultIndent
}

// Options converts the config into generator options.
func (c CodegenConfig) Options() generator.Options {
	return generator.Options{
		Indent:           c.IndentUnit(),
		Comments:         c.Comments,
		Hashes:           c.Hashes,
		OneLineFunctions: c.OneLineFunctions,
		Unnamed:          c.Unnamed,
	}
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Limit int `koanf:"limit"`
}

// Config holds all CLI configuration options.
type Config struct {
	NativesPath  string        `koanf:"natives"`
	Language     string        `koanf:"language"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Codegen      CodegenConfig `koanf:"codegen"`
	Server       ServerConfig  `koanf:"server"`
	Search       SearchConfig  `koanf:"search"`
}

// Default configuration values
const (
	DefaultNatives  = "natives.json"
	DefaultLanguage = "cpp"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultIndent   = "tab"
	DefaultPort     = 8765
	DefaultLimit    = 50
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		NativesPath:  DefaultNatives,
		Language:     DefaultLanguage,
		OutputFormat: DefaultOutput,
		Codegen: CodegenConfig{
			Indent:   DefaultIndent,
			Comments: true,
			Unnamed:  true,
		},
		Server: ServerConfig{Port: DefaultPort},
		Search: SearchConfig{Limit: DefaultLimit},
	}
}
