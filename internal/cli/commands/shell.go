package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/shardsql/internal/config"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/spf13/cobra"
)

// Shell modes
const (
	shellModeParse   = "parse"
	shellModeRewrite = "rewrite"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Parse statements interactively",
		Long: `Start an interactive session. Each statement ending with a semicolon is
parsed with the current dialect and its routing context is printed, or in
rewrite mode the statement is printed with physical table names.

Type .help inside the shell for the list of dot-commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
}

func runShell(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sh := newShell(cmdCtx)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(),
		HistoryFile:     historyPath(cmdCtx.Cfg.HistoryFile),
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Printf("shardsql shell (dialect: %s)\n", cmdCtx.Dialect.Name)
	r.Println("Type .help for commands, .quit to exit")
	r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sh.reset()
			rl.SetPrompt(sh.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := sh.handleLine(line); quit {
			break
		}
		rl.SetPrompt(sh.prompt())
	}

	return nil
}

// shell holds the state of an interactive session, independent of the
// terminal so it can be driven line by line.
type shell struct {
	cmdCtx *CommandContext
	mode   string
	buf    strings.Builder
}

func newShell(cmdCtx *CommandContext) *shell {
	return &shell{cmdCtx: cmdCtx, mode: shellModeParse}
}

func (s *shell) prompt() string {
	if s.buf.Len() > 0 {
		return strings.Repeat(" ", len(s.cmdCtx.Dialect.Name)+7) + "...> "
	}
	return fmt.Sprintf("shardsql(%s)> ", s.cmdCtx.Dialect.Name)
}

func (s *shell) reset() {
	s.buf.Reset()
}

// handleLine consumes one input line and reports whether the session ends.
func (s *shell) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	// Dot-commands only start a fresh statement
	if s.buf.Len() == 0 && strings.HasPrefix(trimmed, ".") {
		return s.handleDotCommand(trimmed)
	}

	// Accumulate multi-line SQL until semicolon
	if s.buf.Len() > 0 {
		s.buf.WriteString("\n")
	}
	s.buf.WriteString(line)
	if !strings.HasSuffix(trimmed, ";") {
		return false
	}

	statement := s.buf.String()
	s.buf.Reset()
	s.execute(statement)
	return false
}

func (s *shell) execute(statement string) {
	r := s.cmdCtx.Renderer

	res := parseOne("<shell>", statement, s.cmdCtx, s.cmdCtx.ParseOptions())
	if res.Error != "" || s.mode == shellModeParse {
		if err := renderParseResults(r, []ParseResult{res}); err != nil {
			r.Error(err.Error())
		}
		return
	}

	result, err := rewriteStatement(s.cmdCtx, res)
	if err != nil {
		r.Error(err.Error())
		return
	}
	if handled, err := r.Structured(result); handled {
		if err != nil {
			r.Error(err.Error())
		}
		return
	}
	r.Println(result.Rewritten)
}

func (s *shell) handleDotCommand(line string) bool {
	r := s.cmdCtx.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(r.Writer())

	case ".dialect":
		if len(parts) < 2 {
			r.Printf("dialect: %s\n", s.cmdCtx.Dialect.Name)
			break
		}
		if err := s.cmdCtx.SetDialect(parts[1]); err != nil {
			r.Error(err.Error())
			break
		}
		r.Printf("dialect: %s\n", s.cmdCtx.Dialect.Name)

	case ".dialects":
		r.Println(strings.Join(dialect.List(), ", "))

	case ".mode":
		if len(parts) < 2 {
			r.Printf("mode: %s\n", s.mode)
			break
		}
		mode := strings.ToLower(parts[1])
		if mode != shellModeParse && mode != shellModeRewrite {
			r.Error(fmt.Sprintf("unknown mode %q (want parse or rewrite)", parts[1]))
			break
		}
		s.mode = mode
		r.Printf("mode: %s\n", s.mode)

	case ".map":
		if len(parts) < 2 {
			r.Error("usage: .map logical=physical [...]")
			break
		}
		tables, err := config.ParseTablePairs(parts[1:])
		if err != nil {
			r.Error(err.Error())
			break
		}
		if s.cmdCtx.Cfg.Tables == nil {
			s.cmdCtx.Cfg.Tables = map[string]string{}
		}
		for logical, physical := range tables {
			s.cmdCtx.Cfg.Tables[logical] = physical
		}
		s.printTables()

	case ".tables":
		s.printTables()

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func (s *shell) printTables() {
	r := s.cmdCtx.Renderer
	tables := s.cmdCtx.Cfg.Tables
	if len(tables) == 0 {
		r.Muted("(no table mappings)")
		return
	}
	logical := make([]string, 0, len(tables))
	for name := range tables {
		logical = append(logical, name)
	}
	slices.Sort(logical)
	for _, name := range logical {
		r.Printf("  %s -> %s\n", name, tables[name])
	}
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help                    Show this help message
  .dialect [name]          Show or switch the dialect
  .dialects                List available dialects
  .mode [parse|rewrite]    Show or switch what statements produce
  .map logical=physical    Add table mappings for rewrite mode
  .tables                  Show table mappings
  .quit / .exit            Exit the shell

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Ctrl-C discards the statement being typed
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter completes dot-commands and their arguments.
func newShellCompleter() *readline.PrefixCompleter {
	names := dialect.List()
	dialectItems := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		dialectItems = append(dialectItems, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialectItems...),
		readline.PcItem(".dialects"),
		readline.PcItem(".mode",
			readline.PcItem(shellModeParse),
			readline.PcItem(shellModeRewrite),
		),
		readline.PcItem(".map"),
		readline.PcItem(".tables"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// historyPath places a relative history file in the home directory.
func historyPath(file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return file
	}
	return filepath.Join(home, file)
}
