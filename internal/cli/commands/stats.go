package commands

import (
	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show natives database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd)
		},
	}
}

func runStats(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	s := cmdCtx.DB.Stats()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(s)
	}

	r.Header(1, "Natives")
	r.KeyValue("File", cmdCtx.Cfg.NativesPath)
	r.KeyValue("Namespaces", s.Namespaces)
	r.KeyValue("Natives", s.Natives)
	r.KeyValue("Named", s.Named)
	r.KeyValue("Unnamed", s.Natives-s.Named)
	r.KeyValue("Commented", s.Commented)
	r.KeyValue("Types", s.Types)
	return nil
}
