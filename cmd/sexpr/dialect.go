package main

import (
	"github.com/spf13/cobra"

	"sexpr/internal/lexer"
	"sexpr/internal/project"
)

// addDialectFlags registers the feature toggles shared by commands that
// read source files.
func addDialectFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("comments", false, "enable ; line comments")
	cmd.Flags().Bool("byte-strings", false, "enable #hex# bytes literals")
	cmd.Flags().Bool("braces", false, "enable {} groups")
	cmd.Flags().Bool("brackets", false, "enable [] groups")
	cmd.Flags().Bool("permissive", false, "enable every dialect feature")
	cmd.Flags().Bool("no-manifest", false, "ignore sexpr.toml")
}

// resolveDialect picks the feature set for a run. Explicit feature flags win;
// otherwise the nearest sexpr.toml decides; otherwise only plain () grouping
// is on.
func resolveDialect(cmd *cobra.Command, startDir string) (lexer.Dialect, error) {
	permissive, _ := cmd.Flags().GetBool("permissive")
	if permissive {
		return lexer.DefaultDialect(), nil
	}

	d := lexer.Dialect{}
	d.LineComments, _ = cmd.Flags().GetBool("comments")
	d.ByteStrings, _ = cmd.Flags().GetBool("byte-strings")
	d.BraceGroups, _ = cmd.Flags().GetBool("braces")
	d.BracketGroups, _ = cmd.Flags().GetBool("brackets")
	if d != (lexer.Dialect{}) {
		return d, nil
	}

	noManifest, _ := cmd.Flags().GetBool("no-manifest")
	if noManifest {
		return lexer.Dialect{}, nil
	}

	m, ok, err := project.LoadNearestManifest(startDir)
	if err != nil {
		return lexer.Dialect{}, err
	}
	if !ok {
		return lexer.Dialect{}, nil
	}
	return m.Dialect(), nil
}
