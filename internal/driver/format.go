package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"sexpr/internal/lexer"
	"sexpr/internal/printer"
	"sexpr/internal/project"
	"sexpr/internal/source"
)

// SourceExt is the file extension the tools operate on.
const SourceExt = ".sexp"

// FormatOptions configures reformatting.
type FormatOptions struct {
	Dialect        lexer.Dialect
	MaxDiagnostics int
	// Check leaves files untouched and only reports whether they would
	// change.
	Check bool
	// Stdout returns formatted content in the results instead of writing
	// files.
	Stdout bool
	// Cache, when non-nil, skips reformatting files whose content and
	// dialect were seen before.
	Cache *DiskCache
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths reformats the given files or directories (collecting *.sexp
// recursively). Files with parse errors are reported via Err and skipped.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatOne(path, opts))
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	formatted, changed, err := formatSingleFile(path, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = changed

	if opts.Check {
		return result
	}
	if opts.Stdout {
		result.Formatted = formatted
		return result
	}
	if changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			result.Changed = false
		}
	}
	return result
}

func formatSingleFile(path string, opts FormatOptions) (formatted []byte, changed bool, err error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, false, err
	}
	sf := fileSet.Get(fileID)

	key := cacheKey(sf, opts.Dialect)
	if opts.Cache != nil {
		var payload FormatPayload
		if ok, _ := opts.Cache.Get(key, &payload); ok {
			return payload.Formatted, !bytes.Equal(sf.Content, payload.Formatted), nil
		}
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	res := parseLoaded(fileSet, fileID, opts.Dialect, maxDiag)
	if res.Bag.HasErrors() {
		return nil, false, errors.New("format: parse errors present")
	}

	formatted, err = printer.Print(res.Nodes, printer.Options{
		Dialect:  opts.Dialect,
		Comments: res.Comments,
	})
	if err != nil {
		return nil, false, err
	}
	if len(formatted) > 0 && formatted[len(formatted)-1] != '\n' {
		formatted = append(formatted, '\n')
	}

	if opts.Cache != nil {
		_ = opts.Cache.Put(key, &FormatPayload{
			Schema:    formatCacheSchemaVersion,
			Formatted: formatted,
		})
	}
	return formatted, !bytes.Equal(sf.Content, formatted), nil
}

func cacheKey(sf *source.File, d lexer.Dialect) project.Digest {
	return project.Combine(project.Digest(sf.Hash), project.DialectFingerprint(d))
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if !d.IsDir() && filepath.Ext(path) == SourceExt {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}
