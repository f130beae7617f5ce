package commands

import (
	"fmt"
	"strings"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/spf13/cobra"
)

// searchResult is the JSON shape of a search hit.
type searchResult struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Hash      string `json:"hash"`
	Match     string `json:"match"`
	Signature string `json:"signature"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search natives by name, hash or previous name",
		Long: `Search natives. Queries starting with 0x match hash prefixes; other
queries match names, with spaces standing in for underscores. Exact matches
rank first, then prefixes, substrings, previous names and comments.`,
		Example: `  nativedb search player ped
  nativedb search 0x43A6
  nativedb search teleport --comments --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, _ := cmd.Flags().GetBool("comments")
			return runSearch(cmd, strings.Join(args, " "), comments)
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of results (default from config)")
	cmd.Flags().Bool("comments", false, "Also search native comments")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, comments bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	hits := cmdCtx.DB.Search(query, natives.SearchOptions{
		Limit:    cmdCtx.Cfg.Search.Limit,
		Comments: comments,
	})

	results := make([]searchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, searchResult{
			Name:      h.Native.DisplayName(),
			Namespace: h.Native.Namespace,
			Hash:      h.Native.Hash,
			Match:     h.Match(),
			Signature: h.Native.Signature(),
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(results)
	}

	if len(results) == 0 {
		r.Muted(fmt.Sprintf("No natives match %q", query))
		return nil
	}

	r.Header(1, fmt.Sprintf("Search: %s (%d results)", query, len(results)))
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{res.Name, res.Namespace, res.Hash, res.Match})
	}
	r.Table([]string{"Name", "Namespace", "Hash", "Match"}, rows)
	return nil
}
