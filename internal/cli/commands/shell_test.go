package commands

import (
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/leapstack-labs/shardsql/internal/cli/testutil"
	"github.com/leapstack-labs/shardsql/internal/config"
	"github.com/leapstack-labs/shardsql/internal/testutil"
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*shell, *clitest.TestRenderer) {
	t.Helper()

	tr := clitest.NewTestRendererText()
	d, err := dialect.Lookup("ansi")
	require.NoError(t, err)

	cmdCtx := &CommandContext{
		Cfg:      config.Default(),
		Logger:   testutil.NewTestLogger(t),
		Dialect:  d,
		Renderer: tr.Renderer,

		MinSeverity: core.SeverityHint,
	}
	return newShell(cmdCtx), tr
}

func TestShell_Prompt(t *testing.T) {
	sh, _ := newTestShell(t)
	assert.Equal(t, "shardsql(ansi)> ", sh.prompt())

	assert.False(t, sh.handleLine("SELECT *"))
	assert.Equal(t, "           ...> ", sh.prompt())

	sh.reset()
	assert.Equal(t, "shardsql(ansi)> ", sh.prompt())
}

func TestShell_MultiLineStatement(t *testing.T) {
	sh, tr := newTestShell(t)

	assert.False(t, sh.handleLine("SELECT o.id"))
	assert.False(t, sh.handleLine("  FROM orders o"))
	assert.Empty(t, tr.Output(), "nothing runs before the semicolon")

	assert.False(t, sh.handleLine("  WHERE o.user_id = ?;"))
	out := tr.Output()
	assert.Contains(t, out, "<shell>")
	assert.Contains(t, out, "Tables")
	assert.Contains(t, out, "orders.user_id")
	assert.Equal(t, "shardsql(ansi)> ", sh.prompt())
}

func TestShell_ParseError(t *testing.T) {
	sh, tr := newTestShell(t)

	sh.handleLine("SELECT a FROM t UNION SELECT b FROM u;")
	assert.Contains(t, tr.Output(), "unsupported: ")

	// The session recovers for the next statement
	tr.Reset()
	sh.handleLine("SELECT a FROM t;")
	assert.Contains(t, tr.Output(), "Tables")
}

func TestShell_DotCommandInsideStatement(t *testing.T) {
	sh, tr := newTestShell(t)

	sh.handleLine("SELECT a")
	sh.handleLine(".tables")
	assert.Empty(t, tr.Output())
	assert.Contains(t, sh.buf.String(), ".tables")
}

func TestShell_DotCommands(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		sh, _ := newTestShell(t)
		assert.True(t, sh.handleLine(".quit"))
		assert.True(t, sh.handleLine(".EXIT"))
	})

	t.Run("help", func(t *testing.T) {
		sh, tr := newTestShell(t)
		assert.False(t, sh.handleLine(".help"))
		assert.Contains(t, tr.Output(), ".map logical=physical")
	})

	t.Run("dialect", func(t *testing.T) {
		sh, tr := newTestShell(t)

		sh.handleLine(".dialect")
		assert.Equal(t, "dialect: ansi\n", tr.Output())

		tr.Reset()
		sh.handleLine(".dialect mysql")
		assert.Equal(t, "dialect: mysql\n", tr.Output())
		assert.Equal(t, "mysql", sh.cmdCtx.Dialect.Name)
		assert.Equal(t, "shardsql(mysql)> ", sh.prompt())

		tr.Reset()
		sh.handleLine(".dialect oracle")
		assert.Contains(t, tr.ErrorOutput(), "unknown dialect")
		assert.Equal(t, "mysql", sh.cmdCtx.Dialect.Name)
	})

	t.Run("dialects", func(t *testing.T) {
		sh, tr := newTestShell(t)
		sh.handleLine(".dialects")
		assert.Contains(t, tr.Output(), "ansi, mysql, postgres")
	})

	t.Run("mode", func(t *testing.T) {
		sh, tr := newTestShell(t)

		sh.handleLine(".mode")
		assert.Equal(t, "mode: parse\n", tr.Output())

		tr.Reset()
		sh.handleLine(".mode REWRITE")
		assert.Equal(t, "mode: rewrite\n", tr.Output())
		assert.Equal(t, shellModeRewrite, sh.mode)

		tr.Reset()
		sh.handleLine(".mode explain")
		assert.Contains(t, tr.ErrorOutput(), `unknown mode "explain"`)
		assert.Equal(t, shellModeRewrite, sh.mode)
	})

	t.Run("map and tables", func(t *testing.T) {
		sh, tr := newTestShell(t)

		sh.handleLine(".tables")
		assert.Contains(t, tr.Output(), "(no table mappings)")

		tr.Reset()
		sh.handleLine(".map orders=orders_1 items=items_1")
		assert.Equal(t, "  items -> items_1\n  orders -> orders_1\n", tr.Output())
		assert.Equal(t, "orders_1", sh.cmdCtx.Cfg.Tables["orders"])

		tr.Reset()
		sh.handleLine(".map orders")
		assert.Contains(t, tr.ErrorOutput(), "expected logical=physical")

		tr.Reset()
		sh.handleLine(".map")
		assert.Contains(t, tr.ErrorOutput(), "usage: .map")
	})

	t.Run("unknown", func(t *testing.T) {
		sh, tr := newTestShell(t)
		assert.False(t, sh.handleLine(".explain"))
		assert.Contains(t, tr.ErrorOutput(), "unknown command: .explain")
	})
}

func TestShell_RewriteMode(t *testing.T) {
	sh, tr := newTestShell(t)

	sh.handleLine(".mode rewrite")
	sh.handleLine(".map orders=orders_7")
	tr.Reset()

	sh.handleLine("SELECT * FROM orders JOIN items ON orders.id = items.oid;")
	assert.Equal(t, "SELECT * FROM orders_7 JOIN items ON orders_7.id = items.oid;\n", tr.Output())

	// Failed parses are still reported in rewrite mode
	tr.Reset()
	sh.handleLine("SELECT FROM t;")
	assert.Contains(t, tr.Output(), "error: ")
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Empty(t, historyPath(""))
	assert.Equal(t, "/var/tmp/history", historyPath("/var/tmp/history"))
	assert.Equal(t, filepath.Join(home, ".shardsql_history"), historyPath(".shardsql_history"))
}

func TestNewShellCompleter(t *testing.T) {
	completer := newShellCompleter()

	var names []string
	for _, child := range completer.GetChildren() {
		names = append(names, string(child.GetName()))
	}
	assert.Contains(t, names, ".dialect ")
	assert.Contains(t, names, ".mode ")
	assert.Contains(t, names, ".quit ")
}
