package adapter

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	m "github.com/mouse-blink/lintel/internal/model"
)

// ErrParserUnavailable reports that the parser itself failed, as opposed to
// the source containing syntax errors. Callers stop using AST-based analysis
// for the rest of the run when they see it.
var ErrParserUnavailable = errors.New("parser unavailable")

// GoFileAdapter encapsulates Go-specific parsing so the domain layer can focus
// on rule execution while delegating compilation details to an infrastructure
// component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and optional source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Populate derives the comment tokens and AST of file from its contents.
	// Syntax errors are recorded on file.ParseErr; only a parser failure is
	// returned as an error.
	Populate(file *m.File) error
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// Populate fills Comments, Fset, AST and ParseErr on file.
func (a *LocalGoFileAdapter) Populate(file *m.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrParserUnavailable, r)
		}
	}()

	file.Comments = ScanComments(file.Contents)

	fset := token.NewFileSet()

	tree, parseErr := a.Parse(fset, string(file.Path), file.Contents)

	file.Fset = fset
	file.AST = tree
	file.ParseErr = parseErr

	return nil
}

// ScanComments tokenizes src and returns every comment in source order.
// Scanning continues past syntax errors so directives still apply to files
// that do not parse.
func ScanComments(src []byte) []m.Comment {
	fset := token.NewFileSet()
	tf := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner

	s.Init(tf, src, func(token.Position, string) {}, scanner.ScanComments)

	var comments []m.Comment

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok != token.COMMENT {
			continue
		}

		start := tf.Position(pos)
		end := tf.Position(pos + token.Pos(len(lit)))

		comments = append(comments, m.Comment{
			Text:      lit,
			Line:      start.Line,
			Column:    start.Column,
			EndLine:   end.Line,
			EndColumn: end.Column,
			Offset:    start.Offset,
		})
	}

	return comments
}
