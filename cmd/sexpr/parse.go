package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sexpr/internal/diagfmt"
	"sexpr/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.sexp|dir|->",
	Short: "Parse an S-expression file and print its tree",
	Long: `Parse builds the expression tree and prints it, recovering from grouping errors.
Pass a directory to parse every .sexp file under it, or - to read stdin`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	addDialectFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	if filePath != "-" {
		if info, err := os.Stat(filePath); err == nil && info.IsDir() {
			return runParseDir(cmd, filePath, format)
		}
	}

	var result *driver.ParseResult
	if filePath == "-" {
		dialect, err := resolveDialect(cmd, ".")
		if err != nil {
			return err
		}
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result = driver.ParseBytes("<stdin>", content, dialect, maxDiagnostics(cmd))
	} else {
		dialect, err := resolveDialect(cmd, filepath.Dir(filePath))
		if err != nil {
			return err
		}
		result, err = driver.Parse(filePath, dialect, maxDiagnostics(cmd))
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   true,
			ShowNotes: true,
		})
	}

	switch format {
	case "tree":
		diagfmt.FormatTree(os.Stdout, result.Nodes, result.FileSet)
	case "json":
		if err := diagfmt.FormatNodesJSON(os.Stdout, result.Nodes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("parse: %d diagnostics", result.Bag.Len())
	}
	return nil
}

// runParseDir parses every .sexp file under dir and prints one combined
// diagnostics dump followed by the per-file trees.
func runParseDir(cmd *cobra.Command, dir, format string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	dialect, err := resolveDialect(cmd, dir)
	if err != nil {
		return err
	}

	fileSet, results, err := driver.ParseDir(cmd.Context(), dir, dialect, maxDiagnostics(cmd), jobs)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	bag := driver.MergedBag(results)
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   true,
			ShowNotes: true,
		})
	}

	for _, res := range results {
		switch format {
		case "tree":
			fmt.Fprintf(os.Stdout, "%s:\n", res.Path)
			diagfmt.FormatTree(os.Stdout, res.Nodes, fileSet)
		case "json":
			if err := diagfmt.FormatNodesJSON(os.Stdout, res.Nodes); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	if bag.HasErrors() {
		return fmt.Errorf("parse: %d diagnostics", bag.Len())
	}
	return nil
}
