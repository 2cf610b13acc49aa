package rules

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"

	m "github.com/mouse-blink/lintel/internal/model"
)

// NestingID identifies the nesting rule.
const NestingID = "nesting"

var nestingDescription = m.RuleDescription{
	ID:          NestingID,
	Name:        "Nesting",
	Description: "Function literals and control flow should not be nested too deeply.",
	Kind:        m.KindMetrics,
	Aliases:     []string{"nesting_depth"},
	Examples: []string{
		"package p\n\nfunc f() {\n\t_ = func() {\n\t\t_ = func() {\n\t\t\t_ = func() {}\n\t\t}\n\t}\n}\n",
	},
}

type nesting struct {
	severity       m.Severity
	functionLevel  int
	statementLevel int
}

func newNesting(params map[string]any) (Rule, error) {
	if err := checkKeys(params, paramSeverity, "function_level", "statement_level"); err != nil {
		return nil, err
	}

	severity, err := severityParam(params, m.SeverityWarning)
	if err != nil {
		return nil, err
	}

	functionLevel, err := intParam(params, "function_level", 2)
	if err != nil {
		return nil, err
	}

	statementLevel, err := intParam(params, "statement_level", 5)
	if err != nil {
		return nil, err
	}

	return &nesting{severity: severity, functionLevel: functionLevel, statementLevel: statementLevel}, nil
}

func (r *nesting) Description() m.RuleDescription { return nestingDescription }

func (r *nesting) RequiresAST() {}

func (r *nesting) Validate(file *m.File) []m.Violation {
	var violations []m.Violation

	insp := inspector.New([]*ast.File{file.AST})
	types := []ast.Node{
		(*ast.FuncLit)(nil),
		(*ast.IfStmt)(nil),
		(*ast.ForStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.SwitchStmt)(nil),
		(*ast.TypeSwitchStmt)(nil),
		(*ast.SelectStmt)(nil),
	}

	insp.WithStack(types, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		funcDepth, stmtDepth := nestingDepths(stack)

		switch n.(type) {
		case *ast.FuncLit:
			if funcDepth > r.functionLevel {
				violations = append(violations, r.violation(file, n, "Function literals", r.functionLevel))
			}
		default:
			if stmtDepth > r.statementLevel {
				violations = append(violations, r.violation(file, n, "Statements", r.statementLevel))
			}
		}

		return true
	})

	return violations
}

func (r *nesting) violation(file *m.File, n ast.Node, what string, level int) m.Violation {
	return m.Violation{
		RuleID:   NestingID,
		Severity: r.severity,
		Location: file.LocationOf(n.Pos()),
		Reason:   fmt.Sprintf("%s should be nested at most %d levels deep", what, level),
	}
}

// nestingDepths counts enclosing function literals and control-flow
// statements; stack includes the current node. The statement count resets at
// each function literal boundary.
func nestingDepths(stack []ast.Node) (funcDepth, stmtDepth int) {
	for _, n := range stack {
		switch n.(type) {
		case *ast.FuncLit:
			funcDepth++
			stmtDepth = 0
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			stmtDepth++
		}
	}

	return funcDepth, stmtDepth
}
