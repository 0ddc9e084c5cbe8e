package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/source"
)

// ParseDirResult is the outcome for one file of a directory parse.
type ParseDirResult struct {
	Path     string
	FileID   source.FileID
	Nodes    []*ast.Node
	Comments []ast.Comment
	Bag      *diag.Bag
}

// listSourceFiles returns all *.sexp files under dir, sorted for a
// deterministic order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.sexp file under dir, at most jobs files at a time
// (jobs <= 0 means GOMAXPROCS). Results follow the sorted file order. Files
// that fail to load get an IOLoadFile diagnostic instead of aborting the run.
func ParseDir(ctx context.Context, dir string, dialect lexer.Dialect, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSet(), nil, nil
	}

	// Loading mutates the FileSet, so it happens up front on one goroutine;
	// lexing and parsing only read it.
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its slot; no mutex needed.
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = ParseDirResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			lx := lexer.New(file, lexer.Options{
				Dialect:  dialect,
				Reporter: &diag.BagReporter{Bag: bag},
			})

			maxErrors, convErr := safecast.Conv[uint](maxDiagnostics)
			if convErr != nil {
				maxErrors = 0
			}
			res := parser.ParseFile(lx, parser.Options{
				Reporter:  &diag.BagReporter{Bag: bag},
				MaxErrors: maxErrors,
			})

			results[i] = ParseDirResult{
				Path:     path,
				FileID:   fileID,
				Nodes:    res.Nodes,
				Comments: res.Comments,
				Bag:      bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergedBag folds the per-file bags of a directory parse into one sorted
// bag, for a single diagnostics dump over the whole run.
func MergedBag(results []ParseDirResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()
	return merged
}

// FormatDir reformats every *.sexp file under dir in parallel. It is
// FormatPaths with a worker pool; result order still follows the sorted file
// list.
func FormatDir(ctx context.Context, dir string, opts FormatOptions, jobs int) ([]FormatResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
