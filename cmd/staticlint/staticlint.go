/*
Package staticlint содержит анализаторы проекта для multichecker.

  - OsExitAnalyzer запрещает прямой вызов os.Exit в функции main пакета main:
    отложенные вызовы (Sync логгера, Flush ответа) при этом не выполняются.
  - StdoutAnalyzer запрещает запись в stdout вне пакета main:
    в режиме CGI stdout является ответом клиенту.

Использование:

	multichecker ./...
*/
package staticlint

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// OsExitAnalyzer проверяет использование os.Exit в функции main пакета main.
var OsExitAnalyzer = &analysis.Analyzer{
	Name:     "osexitlint",
	Doc:      "Запрещает использование os.Exit в main-функции пакета main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runOsExit,
}

// StdoutAnalyzer проверяет запись в stdout вне пакета main.
var StdoutAnalyzer = &analysis.Analyzer{
	Name:     "stdoutlint",
	Doc:      "Запрещает запись в stdout (fmt.Print*, os.Stdout) вне пакета main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runStdout,
}

func runOsExit(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil //nolint:nilnil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector) //nolint:forcetypeassert

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || !insideMain(stack) {
			return true
		}

		if isFunc(pass, n.(*ast.CallExpr), "os", "Exit") { //nolint:forcetypeassert
			pass.Reportf(n.Pos(), "использование os.Exit в main-функции")
		}

		return true
	})

	return nil, nil //nolint:nilnil
}

func runStdout(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() == "main" {
		return nil, nil //nolint:nilnil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector) //nolint:forcetypeassert

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil), (*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		// примеры в тестах печатают в stdout намеренно
		if strings.HasSuffix(pass.Fset.Position(n.Pos()).Filename, "_test.go") {
			return
		}

		switch x := n.(type) {
		case *ast.CallExpr:
			for _, name := range []string{"Print", "Printf", "Println"} {
				if isFunc(pass, x, "fmt", name) {
					pass.Reportf(x.Pos(), "fmt.%s пишет в stdout", name)
				}
			}
		case *ast.SelectorExpr:
			if obj, ok := pass.TypesInfo.Uses[x.Sel].(*types.Var); ok &&
				obj.Pkg() != nil && obj.Pkg().Path() == "os" && obj.Name() == "Stdout" {
				pass.Reportf(x.Pos(), "использование os.Stdout вне пакета main")
			}
		}
	})

	return nil, nil //nolint:nilnil
}

// insideMain проверяет, что узел находится в теле func main.
func insideMain(stack []ast.Node) bool {
	for _, n := range stack {
		if fn, ok := n.(*ast.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == "main" {
			return true
		}
	}

	return false
}

// isFunc проверяет, что вызов относится к функции pkg.name.
func isFunc(pass *analysis.Pass, call *ast.CallExpr, pkg, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}

	return fn.Pkg().Path() == pkg && fn.Name() == name
}
