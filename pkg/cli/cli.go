package cli

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

// Context is bound to every command's Run method.
type Context struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI is the root of the command tree.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag defaults from a JSON file"`
	Verbose bool            `short:"v" help:"Log debug records to stderr" env:"PREFIXTRIE_VERBOSE"`

	Query QueryCmd `cmd:"" help:"Store values in a trie and run lookups, prefix tests and removals"`
}

// Options are the kong options shared by main and the tests.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("prefixtrie"),
		kong.Description("Prefix tree queries over text, paths and networks."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.prefixtrie.json"),
	}
}

// NewLogger returns a text logger on w, at debug level when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
