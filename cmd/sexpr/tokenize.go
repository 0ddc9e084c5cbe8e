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

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.sexp|->",
	Short: "Tokenize an S-expression file",
	Long: `Tokenize breaks a source file into its constituent tokens.
Pass - to read from stdin`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addDialectFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	startDir := "."
	if filePath != "-" {
		startDir = filepath.Dir(filePath)
	}
	dialect, err := resolveDialect(cmd, startDir)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	if filePath == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result = driver.TokenizeBytes("<stdin>", content, dialect, maxDiagnostics(cmd))
	} else {
		result, err = driver.Tokenize(filePath, dialect, maxDiagnostics(cmd))
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
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
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
