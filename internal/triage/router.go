// Package triage is the final classifier: it combines validation results,
// match confidence, and monetary thresholds into a terminal disposition
// and writes the canonical records for it.
package triage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
	"github.com/apexfin/invoice-triage/internal/ledger"
	"github.com/apexfin/invoice-triage/internal/validate"
)

// Thresholds drive the confidence and high-value branches of routing.
type Thresholds struct {
	// HighValue is the billing amount above which a fully passing invoice
	// still requires manager approval.
	HighValue decimal.Decimal
	// LowConfidence rejects resolutions below it.
	LowConfidence float64
	// ReviewConfidence sends passing invoices below it to approval.
	ReviewConfidence float64
}

// DefaultThresholds returns the calibrated routing thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighValue:        decimal.NewFromInt(10000),
		LowConfidence:    0.7,
		ReviewConfidence: 0.9,
	}
}

// Decision is the terminal outcome of routing one invoice.
type Decision struct {
	Disposition      string
	Queue            string
	Priority         string
	RequiresApproval bool
	ExceptionID      string
	RoutingReason    string
	ProcessingResult string
}

// Router decides the disposition for a validated invoice and writes the
// per-queue record, the ledger line, the payments lines on approval, and
// exactly one processed-invoice record.
type Router struct {
	writer    *ledger.ExceptionWriter
	processed *ledger.ProcessedLog
	payments  *ledger.PaymentsLog
	limits    Thresholds
	logger    *zap.Logger
	now       func() time.Time
}

// NewRouter creates a Router.
func NewRouter(
	writer *ledger.ExceptionWriter,
	processed *ledger.ProcessedLog,
	payments *ledger.PaymentsLog,
	limits Thresholds,
	logger *zap.Logger,
) *Router {
	return &Router{
		writer:    writer,
		processed: processed,
		payments:  payments,
		limits:    limits,
		logger:    logger,
		now:       time.Now,
	}
}

// Route applies the priority-ordered routing rules to a validation report.
// Write IO errors are fatal to the caller; validation failures never are.
func (r *Router) Route(report *validate.Report) (*Decision, error) {
	d := r.decide(report)
	now := r.now().UTC()

	if d.Disposition == DispositionApproved {
		res := report.Resolution
		if err := r.payments.AppendApproval(res.Invoice, res.POItem, now); err != nil {
			return nil, fmt.Errorf("appending payments log: %w", err)
		}
		if err := r.appendProcessed(report, d, now); err != nil {
			return nil, err
		}
		r.logger.Info("Invoice approved",
			zap.String("invoice_id", res.Invoice.InvoiceID))
		return d, nil
	}

	d.ExceptionID = newExceptionID()
	rec := r.buildRecord(report, d, now)
	if err := r.writer.Write(rec); err != nil {
		return nil, err
	}
	if err := r.appendProcessed(report, d, now); err != nil {
		return nil, err
	}
	return d, nil
}

// decide evaluates the routing rules in fixed priority order; the first
// matching rule wins.
func (r *Router) decide(report *validate.Report) *Decision {
	res := report.Resolution
	confidence := res.Matching.OverallConfidence

	if failed(report, validate.ToolDuplicates) {
		return rejected(QueueDuplicates, PriorityHigh, true,
			"Potential duplicate of an already processed invoice")
	}
	if failed(report, validate.ToolDependencyCheck) {
		return rejected(QueueMissingData, PriorityHigh, true,
			"Missing documents: "+strings.Join(res.MissingParts(), ", "))
	}
	if confidence < r.limits.LowConfidence {
		return rejected(QueueLowConfidence, PriorityHigh, true,
			fmt.Sprintf("Match confidence %.2f below %.2f", confidence, r.limits.LowConfidence))
	}
	if failed(report, validate.ToolLineItems) {
		return rejected(QueuePrice, PriorityHigh, true,
			"Line item discrepancies between invoice and purchase order")
	}
	if failed(report, validate.ToolSupplierMatch) {
		return rejected(QueueSupplier, PriorityMedium, false,
			"Supplier details do not exactly match the contract")
	}
	if failed(report, validate.ToolBilling) {
		return rejected(QueueBilling, PriorityHigh, true,
			"Billing arithmetic or PO value check failed")
	}
	if failed(report, validate.ToolDates) {
		return rejected(QueueDates, PriorityMedium, false,
			"Invoice dates violate contract or payment terms")
	}

	billing := res.Invoice.Summary.BillingAmount
	if billing.GreaterThan(r.limits.HighValue) || confidence < r.limits.ReviewConfidence {
		reason := fmt.Sprintf("Billing amount %s above %s",
			ledger.FormatMoney(billing), ledger.FormatMoney(r.limits.HighValue))
		if !billing.GreaterThan(r.limits.HighValue) {
			reason = fmt.Sprintf("Match confidence %.2f below review threshold %.2f",
				confidence, r.limits.ReviewConfidence)
		}
		return &Decision{
			Disposition:      DispositionPending,
			Queue:            QueueHighValue,
			Priority:         PriorityHigh,
			RequiresApproval: true,
			RoutingReason:    reason,
			ProcessingResult: ResultPendingApproval,
		}
	}

	return &Decision{
		Disposition:      DispositionApproved,
		RoutingReason:    "All validations passed",
		ProcessingResult: ResultApproved,
	}
}

func rejected(queue, priority string, approval bool, reason string) *Decision {
	return &Decision{
		Disposition:      DispositionRejected,
		Queue:            queue,
		Priority:         priority,
		RequiresApproval: approval,
		RoutingReason:    reason,
		ProcessingResult: "REJECTED_" + strings.ToUpper(queue),
	}
}

func failed(report *validate.Report, toolID string) bool {
	tr, ok := report.Result(toolID)
	return ok && !tr.Passed()
}

// appendProcessed writes the single processed-invoice record for this
// invocation. An unresolved invoice still gets a record keyed by the
// requested filename so replays remain visible.
func (r *Router) appendProcessed(report *validate.Report, d *Decision, now time.Time) error {
	var rec entity.ProcessedInvoice
	if report.Resolution.Invoice != nil {
		rec = entity.NewProcessedInvoice(report.Resolution.Invoice, d.ProcessingResult, now)
	} else {
		rec = entity.ProcessedInvoice{
			Timestamp:        now.Format(time.RFC3339),
			InvoiceID:        report.Resolution.SourcePath,
			ProcessingResult: d.ProcessingResult,
		}
	}
	if err := r.processed.Append(rec); err != nil {
		return fmt.Errorf("appending processed-invoice record: %w", err)
	}
	return nil
}

// newExceptionID returns EXC- followed by 12 upper hex characters.
func newExceptionID() string {
	u, err := uuid.NewRandom()
	if err != nil {
		// crypto/rand exhaustion; fall back to a direct read.
		var b [6]byte
		_, _ = rand.Read(b[:])
		return "EXC-" + strings.ToUpper(hex.EncodeToString(b[:]))
	}
	return "EXC-" + strings.ToUpper(hex.EncodeToString(u[:6]))
}
