package natives

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a natives document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned when a document format cannot be determined.
var ErrUnknownFormat = errors.New("unknown natives format")

// document is the on-disk shape: namespace -> hash -> native.
type document map[string]map[string]*Native

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile reads a natives document from path.
func LoadFile(path string) (*Database, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open natives file: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return db, nil
}

// Load decodes a natives document.
func Load(r io.Reader, format Format) (*Database, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var all []*Native
	for ns, entries := range doc {
		for hash, n := range entries {
			if n == nil {
				continue
			}
			n.Namespace = ns
			n.Hash = NormalizeHash(hash)
			if n.Params == nil {
				n.Params = []Param{}
			}
			all = append(all, n)
		}
	}
	return New(all), nil
}
