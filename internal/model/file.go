package model

import (
	"go/ast"
	"go/token"
	"strings"
)

// Line is one line of a source file without its terminator.
type Line struct {
	Index   int // 1-based
	Content string
	Offset  int // byte offset of the first character
	Length  int // raw length in bytes, excluding the newline
}

// Comment is a comment token with its position.
type Comment struct {
	Text      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int // column just past the comment
	Offset    int
}

// File is the parsed representation a rule runs against.
//
// Contents is authoritative; Comments, AST and Fset are derived by the parser
// adapter and must be refreshed through SetContents after a rewrite.
type File struct {
	Path     Path
	Contents []byte
	Fset     *token.FileSet
	AST      *ast.File
	ParseErr error
	Comments []Comment

	lines []Line
}

// NewFile creates a File for path with the given contents.
func NewFile(path Path, contents []byte) *File {
	return &File{Path: path, Contents: contents}
}

// Lines splits the contents into lines.
func (f *File) Lines() []Line {
	if f.lines != nil {
		return f.lines
	}

	text := string(f.Contents)
	parts := strings.Split(text, "\n")

	// A trailing newline does not start another line.
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, 0, len(parts))
	offset := 0

	for i, part := range parts {
		lines = append(lines, Line{Index: i + 1, Content: strings.TrimSuffix(part, "\r"), Offset: offset, Length: len(part)})
		offset += len(part) + 1
	}

	f.lines = lines

	return lines
}

// SetContents replaces the contents and drops every derived view.
func (f *File) SetContents(contents []byte) {
	f.Contents = contents
	f.lines = nil
	f.AST = nil
	f.Fset = nil
	f.ParseErr = nil
	f.Comments = nil
}

// HasAST reports whether the file parsed successfully.
func (f *File) HasAST() bool {
	return f.AST != nil && f.Fset != nil && f.ParseErr == nil
}

// LocationOf converts a token position into a Location in this file.
func (f *File) LocationOf(pos token.Pos) Location {
	if f.Fset == nil || !pos.IsValid() {
		return Location{File: f.Path, Line: 1}
	}

	p := f.Fset.Position(pos)

	return Location{File: f.Path, Line: p.Line, Character: p.Column}
}
