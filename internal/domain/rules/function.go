package rules

import (
	"fmt"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	m "github.com/mouse-blink/lintel/internal/model"
)

// FunctionBodyLengthID identifies the function_body_length rule.
const FunctionBodyLengthID = "function_body_length"

var functionBodyLengthDescription = m.RuleDescription{
	ID:          FunctionBodyLengthID,
	Name:        "Function Body Length",
	Description: "Function bodies should not span too many lines.",
	Kind:        m.KindMetrics,
	Examples:    []string{"package p\n\nfunc f() {\n" + strings.Repeat("\tprintln()\n", 51) + "}\n"},
}

type functionBodyLength struct {
	limits thresholds
}

func newFunctionBodyLength(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramWarning, paramError); err != nil {
		return nil, err
	}

	limits, err := thresholdParams(params, thresholds{warning: 50, err: 100})
	if err != nil {
		return nil, err
	}

	return &functionBodyLength{limits: limits}, nil
}

func (r *functionBodyLength) Description() m.RuleDescription { return functionBodyLengthDescription }

func (r *functionBodyLength) RequiresAST() {}

func (r *functionBodyLength) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	insp := inspector.New([]*ast.File{file.AST})

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}, func(n ast.Node) {
		var body *ast.BlockStmt

		switch fn := n.(type) {
		case *ast.FuncDecl:
			body = fn.Body
		case *ast.FuncLit:
			body = fn.Body
		}

		if body == nil {
			return
		}

		start := file.Fset.Position(body.Lbrace).Line
		end := file.Fset.Position(body.Rbrace).Line
		lines := max(end-start-1, 0)

		severity, limit, ok := r.limits.severityFor(lines)
		if !ok {
			return
		}

		violations = append(violations, m.Violation{
			RuleID:   FunctionBodyLengthID,
			Severity: severity,
			Location: file.LocationOf(n.Pos()),
			Reason:   fmt.Sprintf("Function body should span %d lines or less: currently spans %d lines", limit, lines),
		})
	})

	return violations
}

// PrintStatementID identifies the print_statement rule.
const PrintStatementID = "print_statement"

var printStatementDescription = m.RuleDescription{
	ID:          PrintStatementID,
	Name:        "Print Statement",
	Description: "The print and println builtins write to stderr and are meant for debugging.",
	Kind:        m.KindLint,
	OptIn:       true,
	Examples:    []string{"package p\n\nfunc f() {\n\tprintln(1)\n}\n"},
}

type printStatement struct {
	severity m.Severity
}

func newPrintStatement(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	return &printStatement{severity: severity}, nil
}

func (r *printStatement) Description() m.RuleDescription { return printStatementDescription }

func (r *printStatement) RequiresAST() {}

func (r *printStatement) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	insp := inspector.New([]*ast.File{file.AST})

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		ident, ok := call.Fun.(*ast.Ident)
		if !ok || (ident.Name != "print" && ident.Name != "println") {
			return
		}

		// A local declaration shadows the builtin.
		if ident.Obj != nil {
			return
		}

		violations = append(violations, m.Violation{
			RuleID:   PrintStatementID,
			Severity: r.severity,
			Location: file.LocationOf(call.Pos()),
			Reason:   fmt.Sprintf("Prefer a logger over the %s builtin", ident.Name),
		})
	})

	return violations
}
