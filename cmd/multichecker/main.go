package main

import (
	"strings"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/staticcheck"

	"readtime/cmd/staticlint"
)

func main() {
	checks := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		nilfunc.Analyzer,
		unusedresult.Analyzer,
	}

	// SA и S анализаторы staticcheck, из стилистических только ST1008
	for _, v := range staticcheck.Analyzers {
		if v.Analyzer == nil {
			continue
		}

		if strings.HasPrefix(v.Analyzer.Name, "S") && !strings.HasPrefix(v.Analyzer.Name, "ST") ||
			v.Analyzer.Name == "ST1008" {
			checks = append(checks, v.Analyzer)
		}
	}

	checks = append(checks,
		errcheck.Analyzer,
		bodyclose.Analyzer,
		ineffassign.Analyzer,
		staticlint.OsExitAnalyzer,
		staticlint.StdoutAnalyzer,
	)

	multichecker.Main(checks...)
}
