// Package validate implements the cross-document validators and the
// runner that orchestrates them over a resolved triple.
package validate

// Status of a tool result or of the aggregated validation.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Tool identifiers, in execution order. dependency_check is emitted by
// the runner when the resolved triple is incomplete.
const (
	ToolDependencyCheck = "dependency_check"
	ToolSupplierMatch   = "supplier_match"
	ToolBilling         = "billing_validation"
	ToolDates           = "date_validation"
	ToolLineItems       = "line_item_reconciliation"
	ToolDuplicates      = "duplicate_check"
)

// ToolResult is the outcome of one validator.
type ToolResult struct {
	ToolID     string
	Status     Status
	Exceptions []Exception
}

// Passed reports whether the tool passed.
func (t ToolResult) Passed() bool { return t.Status == StatusPass }

// Failures returns only the FAIL-severity exceptions.
func (t ToolResult) Failures() []Exception {
	var out []Exception
	for _, e := range t.Exceptions {
		if e.Severity() == SeverityFail {
			out = append(out, e)
		}
	}
	return out
}

// finish sets the status from the recorded exceptions: FAIL iff any
// exception is FAIL-severity.
func (t *ToolResult) finish() {
	t.Status = StatusPass
	for _, e := range t.Exceptions {
		if e.Severity() == SeverityFail {
			t.Status = StatusFail
			return
		}
	}
}
