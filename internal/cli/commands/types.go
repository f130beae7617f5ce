package commands

import (
	"fmt"
	"strconv"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [type]",
		Short: "List the types used by natives, or the natives using a type",
		Example: `  nativedb types
  nativedb types Vector3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runTypeUsers(cmd, args[0])
			}
			return runTypes(cmd)
		},
	}
}

func runTypes(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	types := cmdCtx.DB.Types()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(types)
	}

	r.Header(1, fmt.Sprintf("Types (%d)", len(types)))
	rows := make([][]string, 0, len(types))
	for _, ti := range types {
		rows = append(rows, []string{ti.Name, strconv.Itoa(ti.Uses), strconv.Itoa(ti.Natives)})
	}
	r.Table([]string{"Type", "Uses", "Natives"}, rows)
	return nil
}

func runTypeUsers(cmd *cobra.Command, name string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	users, err := cmdCtx.DB.UsingType(name)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		results := make([]searchResult, 0, len(users))
		for _, n := range users {
			results = append(results, searchResult{
				Name:      n.DisplayName(),
				Namespace: n.Namespace,
				Hash:      n.Hash,
				Signature: n.Signature(),
			})
		}
		return r.JSON(results)
	}

	r.Header(1, fmt.Sprintf("Natives using %s (%d)", name, len(users)))
	rows := make([][]string, 0, len(users))
	for _, n := range users {
		rows = append(rows, []string{n.Namespace, n.Signature()})
	}
	r.Table([]string{"Namespace", "Signature"}, rows)
	return nil
}
