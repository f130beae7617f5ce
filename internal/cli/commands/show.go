package commands

import (
	"strings"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <native>",
		Short: "Show the declaration and documentation of a native",
		Example: `  nativedb show GET_PLAYER_PED
  nativedb show 0x43A66C31C68491C0 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, key string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	n, err := lookupNative(cmdCtx.DB, key)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(n)
	}

	r.Header(1, n.DisplayName())
	r.KeyValue("Namespace", n.Namespace)
	r.KeyValue("Hash", n.Hash)
	if n.JHash != "" {
		r.KeyValue("JHash", n.JHash)
	}
	if n.Build != "" {
		r.KeyValue("Build", n.Build)
	}
	if len(n.OldNames) > 0 {
		r.KeyValue("Old names", strings.Join(n.OldNames, ", "))
	}
	if n.Unused {
		r.KeyValue("Unused", true)
	}
	r.Println("")
	r.Code("c", n.Signature()+";")

	if n.Comment != "" {
		r.Println("")
		r.Header(2, "Description")
		r.Println(n.Comment)
	}
	return nil
}
