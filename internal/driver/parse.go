package driver

import (
	"fortio.org/safecast"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/source"
)

// ParseResult bundles the best-effort tree of one file with its diagnostics.
type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Nodes    []*ast.Node
	Comments []ast.Comment
	Bag      *diag.Bag
}

// Parse loads a file and builds its expression tree. Lexical and grouping
// errors land in the bag; the returned error covers I/O only.
func Parse(path string, dialect lexer.Dialect, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, dialect, maxDiagnostics), nil
}

// ParseBytes parses an in-memory buffer, e.g. stdin.
func ParseBytes(name string, content []byte, dialect lexer.Dialect, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	return parseLoaded(fs, fs.AddVirtual(name, content), dialect, maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, dialect lexer.Dialect, maxDiagnostics int) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Dialect:  dialect,
		Reporter: &diag.BagReporter{Bag: bag},
	})

	maxErrors, err := safecast.Conv[uint](bag.Cap())
	if err != nil {
		maxErrors = 0
	}
	res := parser.ParseFile(lx, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})

	return &ParseResult{
		FileSet:  fs,
		File:     file,
		Nodes:    res.Nodes,
		Comments: res.Comments,
		Bag:      bag,
	}
}
