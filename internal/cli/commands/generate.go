package commands

import (
	"fmt"
	"log/slog"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/spf13/cobra"
)

// generateOutput is the JSON shape of generate.
type generateOutput struct {
	Language  string `json:"language"`
	Native    string `json:"native,omitempty"`
	Namespace string `json:"namespace"`
	Hash      string `json:"hash,omitempty"`
	Code      string `json:"code"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <native>",
		Aliases: []string{"gen"},
		Short:   "Generate the wrapper for a native in a target language",
		Long: `Generate source code invoking a native, looked up by name, hash or
previous name. With --namespace the argument names a namespace and the
whole namespace is generated as one file.

Formatting defaults come from the codegen section of nativedb.yaml.`,
		Example: `  # C++ wrapper for a native
  nativedb generate GET_PLAYER_PED

  # Lua wrapper by hash, body on one line
  nativedb generate 0x43A66C31C68491C0 -l lua --one-line

  # Whole namespace as Rust, indented with 4 spaces
  nativedb generate PLAYER --namespace -l rust --indent 4 -o text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asNamespace, _ := cmd.Flags().GetBool("namespace")
			return runGenerate(cmd, args[0], asNamespace)
		},
	}

	cmd.Flags().StringP("language", "l", "", "Target language (see 'nativedb languages')")
	cmd.Flags().Bool("namespace", false, "Treat the argument as a namespace")
	cmd.Flags().Bool("no-comments", false, "Omit documentation comments")
	cmd.Flags().Bool("hashes", false, "Emit a comment with the hashes and build")
	cmd.Flags().Bool("one-line", false, "Keep function bodies on the declaration line")
	cmd.Flags().Bool("unnamed", true, "Include unnamed natives in namespace output")
	cmd.Flags().String("indent", "", `Indent unit: "tab" or a number of spaces`)
	_ = cmd.RegisterFlagCompletionFunc("language", completeLanguages)

	return cmd
}

func runGenerate(cmd *cobra.Command, key string, asNamespace bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	g, err := generatorFor(cmdCtx.Cfg, "")
	if err != nil {
		return err
	}
	opts := generatorOptions(cmdCtx)

	result := generateOutput{Language: g.Name()}
	if asNamespace {
		ns, err := cmdCtx.DB.Namespace(key)
		if err != nil {
			return err
		}
		result.Namespace = ns.Name
		if result.Code, err = generator.RenderNamespace(g, ns, opts); err != nil {
			return fmt.Errorf("failed to generate namespace %s: %w", ns.Name, err)
		}
	} else {
		n, err := lookupNative(cmdCtx.DB, key)
		if err != nil {
			return err
		}
		result.Native = n.DisplayName()
		result.Namespace = n.Namespace
		result.Hash = n.Hash
		if result.Code, err = generator.RenderNative(g, n, opts); err != nil {
			return fmt.Errorf("failed to generate %s: %w", n.DisplayName(), err)
		}
	}

	cmdCtx.Logger.Debug("generated",
		slog.String("language", g.Name()),
		slog.String("key", key),
		slog.Int("bytes", len(result.Code)))

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	default:
		r.Code(g.Name(), result.Code)
		return nil
	}
}
