package cmd

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/roobyn/sap-bi/internal/scan"
)

type filterProgram struct {
	program *vm.Program
}

// applyFilter keeps the records the expression evaluates to true for.
// Fields of the record are in scope, e.g. 'ObjectName == "Revenue" and
// DataProvider startsWith "DP"'.
func applyFilter(filter *filterProgram, records []scan.MatchRecord) ([]scan.MatchRecord, error) {
	var out []scan.MatchRecord
	for _, rec := range records {
		keep, err := expr.Run(filter.program, rec)
		if err != nil {
			return nil, fmt.Errorf("evaluating filter expression: %w", err)
		}
		if keep.(bool) {
			out = append(out, rec)
		}
	}
	return out, nil
}
