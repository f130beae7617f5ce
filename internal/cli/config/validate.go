package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.NativesPath == "" {
		errs = append(errs, errors.New("natives is required"))
	}

	output := strings.ToLower(c.OutputFormat)
	valid := output == ""
	for _, o := range validOutputs {
		if output == o {
			valid = true
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(validOutputs, "|"), c.OutputFormat))
	}

	if indent := strings.TrimSpace(c.Codegen.Indent); indent != "" && indent != DefaultIndent {
		n, err := strconv.Atoi(indent)
		if err != nil || n < 1 || n > 16 {
			errs = append(errs, fmt.Errorf("codegen.indent must be %q or a number of spaces between 1 and 16, got %q", DefaultIndent, c.Codegen.Indent))
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search.limit must not be negative: %d", c.Search.Limit))
	}

	return errors.Join(errs...)
}

// ValidateNatives checks that the natives file exists.
func (c *Config) ValidateNatives() error {
	if _, err := os.Stat(c.NativesPath); os.IsNotExist(err) {
		return fmt.Errorf("natives file does not exist: %s\nHint: Use --natives or set natives in nativedb.yaml", c.NativesPath)
	}
	return nil
}
