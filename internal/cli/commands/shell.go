package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/spf13/cobra"
)

const shellPrompt = "nativedb> "

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse natives interactively",
		Long: `Start an interactive prompt. Plain input searches the database; dot
commands show natives and generate code in the current language.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
}

// shellSession is the state of one interactive session.
type shellSession struct {
	db    *natives.Database
	gen   generator.Generator
	opts  generator.Options
	limit int
	out   io.Writer
	err   io.Writer
}

func runShell(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	g, err := generatorFor(cmdCtx.Cfg, "")
	if err != nil {
		return err
	}

	s := &shellSession{
		db:    cmdCtx.DB,
		gen:   g,
		opts:  cmdCtx.Cfg.Codegen.Options(),
		limit: cmdCtx.Cfg.Search.Limit,
		out:   cmd.OutOrStdout(),
		err:   cmd.ErrOrStderr(),
	}

	// History lives next to the user's cache, not the natives file.
	historyFile := ""
	if dir, err := os.UserCacheDir(); err == nil {
		historyFile = filepath.Join(dir, "nativedb", "shell_history")
		_ = os.MkdirAll(filepath.Dir(historyFile), 0750)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(s.out, "nativedb shell (%d natives, language %s)\n", s.db.Len(), s.gen.Name())
	_, _ = fmt.Fprintln(s.out, "Type a query to search, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	return s.loop(rl.Readline)
}

// loop reads lines with readLine until .quit, EOF or a read error.
func (s *shellSession) loop(readLine func() (string, error)) error {
	for {
		line, err := readLine()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}
		if !s.exec(line) {
			return nil
		}
	}
}

// exec runs one input line and reports whether the session continues.
func (s *shellSession) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, ".") {
		s.search(line)
		return true
	}

	parts := strings.Fields(line)
	command, args := strings.ToLower(parts[0]), parts[1:]

	switch command {
	case ".quit", ".exit":
		return false

	case ".help":
		printShellHelp(s.out)

	case ".lang":
		if len(args) != 1 {
			_, _ = fmt.Fprintf(s.out, "Language: %s (%s)\n", s.gen.Name(), strings.Join(generator.List(), ", "))
			return true
		}
		g, err := generator.Lookup(args[0])
		if err != nil {
			s.fail(err)
			return true
		}
		s.gen = g
		_, _ = fmt.Fprintf(s.out, "Language: %s\n", g.Name())

	case ".show":
		if n, ok := s.native(args); ok {
			_, _ = fmt.Fprintf(s.out, "%s (%s, %s)\n", n.Signature(), n.Namespace, n.Hash)
			if n.Comment != "" {
				_, _ = fmt.Fprintln(s.out, n.Comment)
			}
		}

	case ".gen":
		if n, ok := s.native(args); ok {
			code, err := generator.RenderNative(s.gen, n, s.opts)
			if err != nil {
				s.fail(err)
				return true
			}
			_, _ = fmt.Fprint(s.out, code)
		}

	case ".ns":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(s.err, "Usage: .ns <namespace>")
			return true
		}
		ns, err := s.db.Namespace(args[0])
		if err != nil {
			s.fail(err)
			return true
		}
		for _, n := range ns.Natives {
			_, _ = fmt.Fprintln(s.out, n.Signature())
		}

	default:
		_, _ = fmt.Fprintf(s.err, "Unknown command: %s (type .help for commands)\n", command)
	}
	return true
}

func (s *shellSession) search(query string) {
	hits := s.db.Search(query, natives.SearchOptions{Limit: s.limit})
	if len(hits) == 0 {
		_, _ = fmt.Fprintf(s.out, "No natives match %q\n", query)
		return
	}
	for _, h := range hits {
		_, _ = fmt.Fprintf(s.out, "%-10s %s\n", h.Native.Namespace, h.Native.Signature())
	}
}

func (s *shellSession) native(args []string) (*natives.Native, bool) {
	if len(args) != 1 {
		_, _ = fmt.Fprintln(s.err, "Usage: .show|.gen <native>")
		return nil, false
	}
	n, err := s.db.Lookup(args[0])
	if err != nil {
		s.fail(err)
		return nil, false
	}
	return n, true
}

func (s *shellSession) fail(err error) {
	_, _ = fmt.Fprintf(s.err, "Error: %v\n", err)
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  <query>          Search natives by name or hash
  .show <native>   Show a native's declaration and comment
  .gen <native>    Generate code for a native
  .ns <namespace>  List the natives of a namespace
  .lang [name]     Show or change the target language
  .quit / .exit    Exit the shell
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter completes dot commands and language names.
func newShellCompleter() *readline.PrefixCompleter {
	langs := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range generator.List() {
		langs = append(langs, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".show"),
		readline.PcItem(".gen"),
		readline.PcItem(".ns"),
		readline.PcItem(".lang", langs...),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
