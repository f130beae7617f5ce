package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportFile is one written file, reported by --output json.
type exportFile struct {
	Language  string `json:"language"`
	Namespace string `json:"namespace"`
	Path      string `json:"path"`
	Bytes     int    `json:"bytes"`
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write one source file per namespace and language",
		Long: `Generate every namespace in each selected language and write the files
under <dir>/<language>/<namespace><ext>.

Without --languages the configured language is exported; "all" exports every
registered generator. Files are rendered concurrently.`,
		Example: `  # Export the configured language
  nativedb export ./out

  # Export C# and Lua without unnamed natives
  nativedb export ./out -l csharp,lua --unnamed=false

  # Export everything
  nativedb export ./out -l all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, _ := cmd.Flags().GetStringSlice("languages")
			jobs, _ := cmd.Flags().GetInt("jobs")
			return runExport(cmd, args[0], langs, jobs)
		},
	}

	cmd.Flags().StringSliceP("languages", "l", nil, `Languages to export, or "all"`)
	cmd.Flags().Int("jobs", 0, "Files rendered in parallel (default: number of CPUs)")
	cmd.Flags().Bool("no-comments", false, "Omit documentation comments")
	cmd.Flags().Bool("hashes", false, "Emit a comment with the hashes and build")
	cmd.Flags().Bool("one-line", false, "Keep function bodies on the declaration line")
	cmd.Flags().Bool("unnamed", true, "Include unnamed natives")
	cmd.Flags().String("indent", "", `Indent unit: "tab" or a number of spaces`)
	_ = cmd.RegisterFlagCompletionFunc("languages", completeLanguages)

	return cmd
}

func runExport(cmd *cobra.Command, dir string, langs []string, jobs int) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	gens, err := selectGenerators(langs, cmdCtx.Cfg.Language)
	if err != nil {
		return err
	}

	files, err := exportNamespaces(cmd.Context(), cmdCtx.DB, gens, generatorOptions(cmdCtx), dir, jobs, cmdCtx.Logger)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(files)
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Exported %d files", len(files)))
		for _, f := range files {
			r.Println(output.FormatKeyValue(f.Language+"/"+f.Namespace, f.Path))
		}
	default:
		r.Success(fmt.Sprintf("Wrote %d files to %s", len(files), dir))
	}
	return nil
}

// generatorOptions returns the codegen options of the loaded config.
func generatorOptions(cmdCtx *CommandContext) generator.Options {
	return cmdCtx.Cfg.Codegen.Options()
}

// selectGenerators resolves the --languages values.
func selectGenerators(langs []string, fallback string) ([]generator.Generator, error) {
	if len(langs) == 0 {
		langs = []string{fallback}
	}

	seen := make(map[string]bool)
	var gens []generator.Generator
	for _, lang := range langs {
		if strings.EqualFold(lang, "all") {
			return generator.All(), nil
		}
		g, err := generator.Lookup(lang)
		if err != nil {
			return nil, err
		}
		if !seen[g.Name()] {
			seen[g.Name()] = true
			gens = append(gens, g)
		}
	}
	return gens, nil
}

// exportNamespaces renders every namespace with every generator and writes
// the files under dir. Each job owns its writer.
func exportNamespaces(ctx context.Context, db *natives.Database, gens []generator.Generator, opts generator.Options, dir string, jobs int, logger *slog.Logger) ([]exportFile, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	for _, g := range gens {
		if err := os.MkdirAll(filepath.Join(dir, g.Name()), 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var (
		mu    sync.Mutex
		files []exportFile
	)

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for _, g := range gens {
		for _, ns := range db.Namespaces() {
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}

				code, err := generator.RenderNamespace(g, ns, opts)
				if err != nil {
					return fmt.Errorf("failed to generate %s/%s: %w", g.Name(), ns.Name, err)
				}

				path := filepath.Join(dir, g.Name(), strings.ToLower(ns.Name)+g.Extension())
				if err := os.WriteFile(path, []byte(code), 0o644); err != nil { //nolint:gosec // generated sources are meant to be shared
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				logger.Debug("exported", slog.String("language", g.Name()), slog.String("namespace", ns.Name), slog.String("path", path))

				mu.Lock()
				files = append(files, exportFile{Language: g.Name(), Namespace: ns.Name, Path: path, Bytes: len(code)})
				mu.Unlock()
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Language != files[j].Language {
			return files[i].Language < files[j].Language
		}
		return files[i].Namespace < files[j].Namespace
	})
	return files, nil
}
