package driver

import (
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

// TokenizeResult bundles the token stream of one file with its diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads a file and runs the lexer to EOF. Lexical errors land in
// the bag; the returned error covers I/O only.
func Tokenize(path string, dialect lexer.Dialect, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Dialect:  dialect,
		Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter(),
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// TokenizeBytes runs the lexer over an in-memory buffer, e.g. stdin.
func TokenizeBytes(name string, content []byte, dialect lexer.Dialect, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Dialect:  dialect,
		Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter(),
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
