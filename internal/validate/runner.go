package validate

import (
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
	"github.com/apexfin/invoice-triage/internal/resolve"
)

// Report is the aggregated outcome of one validation run.
type Report struct {
	Validation  Status
	Resolution  *entity.Resolution
	ToolResults []ToolResult
}

// Result returns the tool result with the given id, if present.
func (r *Report) Result(toolID string) (ToolResult, bool) {
	for _, tr := range r.ToolResults {
		if tr.ToolID == toolID {
			return tr, true
		}
	}
	return ToolResult{}, false
}

// Runner resolves an invoice and executes the validators in strict order.
// If any document of the triple is missing it emits a single
// dependency_check FAIL and runs nothing else, so downstream queues never
// see misleading secondary failures.
type Runner struct {
	resolver *resolve.Resolver
	dup      *DuplicateDetector
	logger   *zap.Logger
}

// NewRunner creates a Runner.
func NewRunner(resolver *resolve.Resolver, dup *DuplicateDetector, logger *zap.Logger) *Runner {
	return &Runner{resolver: resolver, dup: dup, logger: logger}
}

// Run resolves filename and validates the triple. The only side effect is
// the duplicate detector reading the processed-invoice log.
func (r *Runner) Run(filename string) *Report {
	res := r.resolver.Resolve(filename)
	report := &Report{Resolution: res}

	if missing := res.MissingParts(); len(missing) > 0 {
		dep := ToolResult{ToolID: ToolDependencyCheck, Status: StatusFail}
		for _, m := range missing {
			dep.Exceptions = append(dep.Exceptions, DocumentNotFound{Document: m})
		}
		report.ToolResults = []ToolResult{dep}
		report.Validation = StatusFail
		r.logger.Info("Validation short-circuited on missing dependencies",
			zap.String("filename", filename),
			zap.Strings("missing", missing))
		return report
	}

	report.ToolResults = []ToolResult{
		CheckSupplier(res.Invoice, res.Contract),
		CheckBilling(res.Invoice, res.POItem),
		CheckDates(res.Invoice, res.POItem, res.Contract),
		CheckLineItems(res.Invoice, res.POItem),
		r.dup.Check(res.Invoice),
	}

	report.Validation = StatusPass
	for _, tr := range report.ToolResults {
		if !tr.Passed() {
			report.Validation = StatusFail
		}
	}

	r.logger.Info("Validation complete",
		zap.String("invoice_id", res.Invoice.InvoiceID),
		zap.String("validation", string(report.Validation)),
		zap.Float64("overall_confidence", res.Matching.OverallConfidence))
	return report
}
