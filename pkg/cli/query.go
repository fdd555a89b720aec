package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/khalid-nowaf/prefixtrie/pkg/cidr"
	"github.com/khalid-nowaf/prefixtrie/pkg/trie"
)

// QueryCmd seeds a trie from files, applies the adds and removes, then runs the lookups and prefix tests.
type QueryCmd struct {
	Files     []string `arg:"" optional:"" type:"existingfile" help:"Seed files with the values to store (CSV, TSV, JSON, YAML or one value per line)"`
	Key       string   `help:"Column or field holding the value in CSV, JSON and YAML seed files" default:"value" env:"PREFIXTRIE_KEY"`
	Mode      string   `help:"How values are split into tokens: text or cidr" enum:"text,cidr" default:"text" env:"PREFIXTRIE_MODE"`
	Delimiter string   `help:"Segment delimiter in text mode, empty splits values into characters" env:"PREFIXTRIE_DELIMITER"`
	Add       []string `help:"Value to add after seeding" sep:"none"`
	Remove    []string `help:"Value to remove after seeding" sep:"none"`
	Lookup    []string `help:"Value to look up" sep:"none"`
	Prefix    []string `help:"Value to test for being a prefix of a stored value" sep:"none"`
	Output    string   `help:"Result format" enum:"csv,tsv,json" default:"csv"`
	OutDir    string   `help:"Directory for the result file" type:"existingdir" default:"."`
}

// Stats counts what a query run did.
type Stats struct {
	Seeded  int
	Stored  int
	Nodes   int
	Queries int
}

// Run executes the query command.
func (cmd *QueryCmd) Run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stdout := ctx.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var seeds []string
	for _, file := range cmd.Files {
		err := parseFile(file, cmd.Key, func(value string) error {
			seeds = append(seeds, value)
			return nil
		})
		if err != nil {
			return err
		}
		logger.Debug("seed file parsed", slog.String("file", file), slog.Int("values", len(seeds)))
	}

	opts := []trie.Option{trie.WithLogger(logger), trie.WithDelimiter(cmd.Delimiter)}

	var (
		results []Result
		stats   *Stats
		err     error
	)
	switch cmd.Mode {
	case "cidr":
		results, stats, err = runQueries(cmd, cidr.NewTrie(nil, opts...), seeds)
	default:
		results, stats, err = runQueries(cmd, trie.NewText(nil, opts...), seeds)
	}
	if err != nil {
		return err
	}

	filePath, err := writeResults(newWriter(cmd.Output), cmd.OutDir, results)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Seeded %s values, %s stored in %s nodes\n",
		humanize.Comma(int64(stats.Seeded)), humanize.Comma(int64(stats.Stored)), humanize.Comma(int64(stats.Nodes)))
	fmt.Fprintf(stdout, "Wrote %s results to %s\n", humanize.Comma(int64(stats.Queries)), filePath)
	return nil
}

// runQueries works on any trie over strings, whatever its token type.
func runQueries[K comparable](cmd *QueryCmd, t *trie.Trie[string, K], seeds []string) ([]Result, *Stats, error) {
	for _, seed := range seeds {
		if err := t.Add(seed).Err(); err != nil {
			return nil, nil, fmt.Errorf("seeding: %w", err)
		}
	}
	stats := &Stats{Seeded: len(seeds)}

	results := make([]Result, 0, len(cmd.Add)+len(cmd.Remove)+len(cmd.Lookup)+len(cmd.Prefix))
	for _, value := range cmd.Add {
		if err := t.Add(value).Err(); err != nil {
			return nil, nil, fmt.Errorf("add: %w", err)
		}
		results = append(results, Result{Operation: "add", Value: value, Result: t.Lookup(value)})
	}
	for _, value := range cmd.Remove {
		if err := t.Remove(value).Err(); err != nil {
			return nil, nil, fmt.Errorf("remove: %w", err)
		}
		results = append(results, Result{Operation: "remove", Value: value, Result: t.Lookup(value)})
	}
	for _, value := range cmd.Lookup {
		results = append(results, Result{Operation: "lookup", Value: value, Result: t.Lookup(value)})
	}
	for _, value := range cmd.Prefix {
		results = append(results, Result{Operation: "prefix", Value: value, Result: t.IsPrefix(value)})
	}

	stats.Stored = t.Len()
	stats.Nodes = t.Nodes()
	stats.Queries = len(results)
	return results, stats, nil
}
