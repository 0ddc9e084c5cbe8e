package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sexpr/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [flags] [dir]",
	Short: "Create a sexpr.toml manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (defaults to the directory name)")
	initCmd.Flags().Bool("permissive", false, "enable every dialect feature in the manifest")
}

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	permissive, err := cmd.Flags().GetBool("permissive")
	if err != nil {
		return err
	}

	path := filepath.Join(abs, project.ManifestName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("init: %s already exists", path)
	}

	feature := "false"
	if permissive {
		feature = "true"
	}
	content := fmt.Sprintf(`[package]
name = %q

[dialect]
line_comments = %s
byte_strings = %s
brace_groups = %s
bracket_groups = %s
`, name, feature, feature, feature, feature)

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
