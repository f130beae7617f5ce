// Package commands_test provides tests for CLI command creation.
package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nativedb/nativedb/internal/testutil"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate <native>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Equal(t, []string{"gen"}, cmd.Aliases)

	flags := []string{"language", "namespace", "no-comments", "hashes", "one-line", "unnamed", "indent"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "l", cmd.Flags().Lookup("language").Shorthand)
}

func TestNewExportCommand(t *testing.T) {
	cmd := NewExportCommand()

	assert.Equal(t, "export <dir>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"languages", "jobs", "no-comments", "hashes", "one-line", "unnamed", "indent"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewSearchCommand(t *testing.T) {
	cmd := NewSearchCommand()

	assert.Equal(t, "search <query>", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
	assert.NotNil(t, cmd.Flags().Lookup("comments"))
	assert.Error(t, cmd.Args(cmd, nil), "search requires a query")
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should list the endpoints")
	for _, flag := range []string{"port", "watch", "language"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestSimpleCommands(t *testing.T) {
	tests := []struct {
		use  string
		make func() string
	}{
		{"show <native>", func() string { return NewShowCommand().Use }},
		{"types [type]", func() string { return NewTypesCommand().Use }},
		{"stats", func() string { return NewStatsCommand().Use }},
		{"languages", func() string { return NewLanguagesCommand().Use }},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.make())
		})
	}
}

func TestSelectGenerators(t *testing.T) {
	tests := []struct {
		name     string
		langs    []string
		fallback string
		want     []string
		wantErr  bool
	}{
		{name: "fallback", fallback: "lua", want: []string{"lua"}},
		{name: "aliases deduplicated", langs: []string{"cpp", "c++", "cs"}, want: []string{"cpp", "csharp"}},
		{name: "all", langs: []string{"lua", "all"}, want: []string{"cpp", "csharp", "lua", "python", "rust", "typescript"}},
		{name: "unknown", langs: []string{"cobol"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gens, err := selectGenerators(tt.langs, tt.fallback)
			if tt.wantErr {
				require.ErrorIs(t, err, generator.ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(gens))
			for _, g := range gens {
				names = append(names, g.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestExportNamespaces(t *testing.T) {
	db := testutil.SampleDatabase(t)
	dir := t.TempDir()
	gens, err := selectGenerators([]string{"cpp", "lua"}, "")
	require.NoError(t, err)

	opts := generator.DefaultOptions()
	opts.Unnamed = false
	files, err := exportNamespaces(context.Background(), db, gens, opts, dir, 2, testutil.NewTestLogger(t))
	require.NoError(t, err)

	require.Len(t, files, 6)
	assert.Equal(t, "cpp", files[0].Language)
	assert.Equal(t, "ENTITY", files[0].Namespace)
	assert.Equal(t, "lua", files[5].Language)
	assert.Equal(t, "PLAYER", files[5].Namespace)

	misc, err := os.ReadFile(filepath.Join(dir, "cpp", "misc.hpp"))
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n\nnamespace MISC\n{\n}\n", string(misc))
	assert.Equal(t, len(misc), files[1].Bytes)

	_, err = os.Stat(filepath.Join(dir, "lua", "player.lua"))
	assert.NoError(t, err)
}

func TestExportNamespaces_Cancelled(t *testing.T) {
	db := testutil.SampleDatabase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exportNamespaces(ctx, db, generator.All(), generator.DefaultOptions(), t.TempDir(), 1, testutil.NewTestLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookupNative(t *testing.T) {
	db := testutil.SampleDatabase(t)

	n, err := lookupNative(db, "player_id")
	require.NoError(t, err)
	assert.Equal(t, "PLAYER_ID", n.Name)

	_, err = lookupNative(db, "GET_PLAYER")
	require.ErrorIs(t, err, natives.ErrNotFound)
	assert.Contains(t, err.Error(), "nativedb search GET_PLAYER")
}

func TestListLanguages(t *testing.T) {
	langs := listLanguages()
	require.Len(t, langs, 6)
	for _, l := range langs {
		assert.NotEmpty(t, l.Label, l.Name)
		assert.NotEmpty(t, l.Extension, l.Name)
		assert.NotNil(t, l.Aliases, l.Name)
	}
}
