package validate

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
	"github.com/apexfin/invoice-triage/internal/ledger"
)

// Duplicate-score indicator weights. The raw sum can exceed 1.0 when all
// indicators fire and is capped at 1.0.
const (
	weightSupplierName  = 0.3
	weightVendorID      = 0.2
	weightInvoiceNumber = 0.4
	weightBilling       = 0.1
	weightPONumber      = 0.1
)

// Two-threshold duplicate policy: above rejectThreshold the invoice is
// rejected as a potential duplicate; above annotateThreshold it passes
// with a possible_duplicate annotation.
const (
	duplicateRejectThreshold   = 0.8
	duplicateAnnotateThreshold = 0.5
)

var oneCent = decimal.New(1, -2)

// DuplicateDetector scores the current invoice against every record in
// the processed-invoice log. Unlike the other validators it reads durable
// state.
type DuplicateDetector struct {
	log    *ledger.ProcessedLog
	logger *zap.Logger
}

// NewDuplicateDetector creates a detector over the processed-invoice log.
func NewDuplicateDetector(log *ledger.ProcessedLog, logger *zap.Logger) *DuplicateDetector {
	return &DuplicateDetector{log: log, logger: logger}
}

// Check scores every prior record and applies the two-threshold policy.
func (d *DuplicateDetector) Check(inv *entity.Invoice) ToolResult {
	result := ToolResult{ToolID: ToolDuplicates}

	var best float64
	var bestRec *entity.ProcessedInvoice
	var bestReasons []string

	records := d.log.Records()
	for i := range records {
		score, reasons := scoreAgainst(inv, &records[i])
		if score > best {
			best = score
			bestRec = &records[i]
			bestReasons = reasons
		}
	}

	if bestRec == nil || best <= duplicateAnnotateThreshold {
		result.Status = StatusPass
		return result
	}

	kind := "possible_duplicate"
	if best > duplicateRejectThreshold {
		kind = "potential_duplicate"
	}
	d.logger.Warn("Duplicate candidate found",
		zap.String("invoice_id", inv.InvoiceID),
		zap.String("matched_invoice_id", bestRec.InvoiceID),
		zap.Float64("confidence", best),
		zap.String("kind", kind))

	result.Exceptions = append(result.Exceptions, DuplicateMatch{
		DuplicateKind:    kind,
		Confidence:       best,
		MatchedInvoiceID: bestRec.InvoiceID,
		MatchedResult:    bestRec.ProcessingResult,
		MatchedTimestamp: bestRec.Timestamp,
		Reasons:          bestReasons,
	})
	result.finish()
	return result
}

// scoreAgainst computes the weighted equality score of the invoice against
// one processed record, with human-readable match reasons.
func scoreAgainst(inv *entity.Invoice, rec *entity.ProcessedInvoice) (float64, []string) {
	var score float64
	var reasons []string

	if inv.SupplierInfo.Name != "" && inv.SupplierInfo.Name == rec.SupplierName {
		score += weightSupplierName
		reasons = append(reasons, "Same supplier name")
	}
	if inv.SupplierInfo.VendorID != "" && inv.SupplierInfo.VendorID == rec.VendorID {
		score += weightVendorID
		reasons = append(reasons, "Same vendor ID")
	}
	if inv.InvoiceID != "" && (inv.InvoiceID == rec.InvoiceID || inv.InvoiceID == rec.InvoiceNumber) {
		score += weightInvoiceNumber
		reasons = append(reasons, "Same invoice number")
	}
	if inv.Summary.BillingAmount.Sub(rec.BillingAmount).Abs().LessThanOrEqual(oneCent) {
		score += weightBilling
		reasons = append(reasons, "Same billing amount")
	}
	if inv.PurchaseOrderNumber != "" && inv.PurchaseOrderNumber == rec.PONumber {
		score += weightPONumber
		reasons = append(reasons, "Same PO number")
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}
