package commands

import (
	"strings"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/spf13/cobra"
)

// languageInfo describes a registered generator.
type languageInfo struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Extension string   `json:"extension"`
	Aliases   []string `json:"aliases"`
}

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List the target languages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd)
		},
	}
}

func listLanguages() []languageInfo {
	gens := generator.All()
	out := make([]languageInfo, 0, len(gens))
	for _, g := range gens {
		aliases := generator.Aliases(g.Name())
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, languageInfo{
			Name:      g.Name(),
			Label:     g.Label(),
			Extension: g.Extension(),
			Aliases:   aliases,
		})
	}
	return out
}

func runLanguages(cmd *cobra.Command) error {
	r := NewCommandContextWithoutDB(cmd).Renderer

	langs := listLanguages()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(langs)
	}

	r.Header(1, "Languages")
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, []string{l.Name, l.Label, l.Extension, strings.Join(l.Aliases, ", ")})
	}
	r.Table([]string{"Name", "Language", "Extension", "Aliases"}, rows)
	return nil
}
