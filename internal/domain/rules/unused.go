package rules

import (
	"fmt"
	"go/ast"
	"path/filepath"

	"golang.org/x/tools/go/ast/inspector"

	m "github.com/mouse-blink/lintel/internal/model"
)

// UnusedDeclarationID identifies the unused_declaration rule.
const UnusedDeclarationID = "unused_declaration"

var unusedDeclarationDescription = m.RuleDescription{
	ID:          UnusedDeclarationID,
	Name:        "Unused Declaration",
	Description: "Unexported top-level functions should be referenced somewhere in their package.",
	Kind:        m.KindLint,
	OptIn:       true,
	Collecting:  true,
}

// declarationInfo is what a file contributes to the cross-file analysis.
type declarationInfo struct {
	pkg        string // directory + package name
	declared   map[string]m.Location
	referenced map[string]struct{}
}

type unusedDeclaration struct {
	severity m.Severity
}

func newUnusedDeclaration(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	return &unusedDeclaration{severity: severity}, nil
}

func (r *unusedDeclaration) Description() m.RuleDescription { return unusedDeclarationDescription }

func (r *unusedDeclaration) RequiresAST() {}

// Validate without collected info has nothing to compare against.
func (r *unusedDeclaration) Validate(*m.File) []m.Violation { return nil }

func (r *unusedDeclaration) Collect(file *m.File) any {
	info := declarationInfo{
		pkg:        filepath.Dir(string(file.Path)) + ":" + file.AST.Name.Name,
		declared:   map[string]m.Location{},
		referenced: map[string]struct{}{},
	}

	declIdents := map[*ast.Ident]struct{}{}

	for _, decl := range file.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || ast.IsExported(fn.Name.Name) {
			continue
		}

		if fn.Name.Name == "init" || fn.Name.Name == "main" || fn.Name.Name == "_" {
			continue
		}

		declIdents[fn.Name] = struct{}{}
		info.declared[fn.Name.Name] = file.LocationOf(fn.Name.Pos())
	}

	insp := inspector.New([]*ast.File{file.AST})

	insp.Preorder([]ast.Node{(*ast.Ident)(nil)}, func(n ast.Node) {
		ident := n.(*ast.Ident)
		if _, isDecl := declIdents[ident]; isDecl {
			return
		}

		info.referenced[ident.Name] = struct{}{}
	})

	return info
}

func (r *unusedDeclaration) ValidateCollected(file *m.File, collected map[m.Path]any) []m.Violation {
	own, ok := collected[file.Path].(declarationInfo)
	if !ok {
		return nil
	}

	var violations []m.Violation

	for name, loc := range own.declared {
		if referencedInPackage(name, own.pkg, collected) {
			continue
		}

		violations = append(violations, m.Violation{
			RuleID:   UnusedDeclarationID,
			Severity: r.severity,
			Location: loc,
			Reason:   fmt.Sprintf("Function %s is declared but never used", name),
		})
	}

	return violations
}

func referencedInPackage(name, pkg string, collected map[m.Path]any) bool {
	for _, raw := range collected {
		info, ok := raw.(declarationInfo)
		if !ok || info.pkg != pkg {
			continue
		}

		if _, ok := info.referenced[name]; ok {
			return true
		}
	}

	return false
}
