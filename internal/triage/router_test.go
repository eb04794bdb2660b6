package triage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
	"github.com/apexfin/invoice-triage/internal/ledger"
	"github.com/apexfin/invoice-triage/internal/validate"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type routerFixture struct {
	router    *Router
	writer    *ledger.ExceptionWriter
	processed *ledger.ProcessedLog
	dir       string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	dir := t.TempDir()
	appender := ledger.NewAppender()
	writer := ledger.NewExceptionWriter(dir, appender, zap.NewNop())
	processed := ledger.NewProcessedLog(dir, appender, zap.NewNop())
	payments := ledger.NewPaymentsLog(dir, appender, zap.NewNop())

	router := NewRouter(writer, processed, payments, DefaultThresholds(), zap.NewNop())
	router.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return &routerFixture{router: router, writer: writer, processed: processed, dir: dir}
}

func resolvedInvoice(billing string) *entity.Invoice {
	return &entity.Invoice{
		InvoiceID:           "INV-1",
		PurchaseOrderNumber: "PO-1",
		SupplierInfo:        entity.SupplierInfo{Name: "Acme Manufacturing", VendorID: "V-100"},
		IssueDate:           "2024-06-01",
		Summary: entity.InvoiceSummary{
			Subtotal:      dec(billing).Mul(dec("0.9")),
			TaxAmount:     dec(billing).Mul(dec("0.1")),
			BillingAmount: dec(billing),
		},
		LineItems: []entity.LineItem{{
			ItemID:      "ITEM-1",
			Description: "Steel mounting brackets",
			Quantity:    dec("10"),
			UnitPrice:   dec(billing).Div(dec("10")),
			LineTotal:   dec(billing),
		}},
	}
}

func fullResolution(billing string, confidence float64) *entity.Resolution {
	return &entity.Resolution{
		Invoice:    resolvedInvoice(billing),
		POItem:     &entity.POItem{PONumber: "PO-1", ContractID: "CTR-001", TotalValue: dec(billing)},
		Contract:   &entity.Contract{ContractID: "CTR-001"},
		SourcePath: "INV-1.json",
		Matching: entity.Matching{
			POMatch:           entity.POMatchReport{Matched: true, PONumber: "PO-1", MatchType: "exact", Confidence: confidence},
			SupplierMatch:     entity.SupplierMatchReport{Matched: true, MatchType: "vendor_id_exact", Confidence: confidence},
			OverallConfidence: confidence,
		},
	}
}

func passingReport(billing string, confidence float64) *validate.Report {
	return &validate.Report{
		Validation: validate.StatusPass,
		Resolution: fullResolution(billing, confidence),
		ToolResults: []validate.ToolResult{
			{ToolID: validate.ToolSupplierMatch, Status: validate.StatusPass},
			{ToolID: validate.ToolBilling, Status: validate.StatusPass},
			{ToolID: validate.ToolDates, Status: validate.StatusPass},
			{ToolID: validate.ToolLineItems, Status: validate.StatusPass},
			{ToolID: validate.ToolDuplicates, Status: validate.StatusPass},
		},
	}
}

func withFailure(report *validate.Report, toolID string, excs ...validate.Exception) *validate.Report {
	report.Validation = validate.StatusFail
	for i := range report.ToolResults {
		if report.ToolResults[i].ToolID == toolID {
			report.ToolResults[i].Status = validate.StatusFail
			report.ToolResults[i].Exceptions = excs
		}
	}
	return report
}

var exceptionIDPattern = regexp.MustCompile(`^EXC-[0-9A-F]{12}$`)

func TestRouteApproved(t *testing.T) {
	fx := newRouterFixture(t)
	d, err := fx.router.Route(passingReport("1000", 1.0))
	require.NoError(t, err)

	assert.Equal(t, DispositionApproved, d.Disposition)
	assert.Equal(t, ResultApproved, d.ProcessingResult)
	assert.Empty(t, d.Queue)
	assert.Empty(t, d.ExceptionID)

	// Payments log carries the approval line plus one payment_item line.
	data, err := os.ReadFile(filepath.Join(fx.dir, ledger.PaymentsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Invoice INV-1 approved. Routing to Payment System.")
	assert.Contains(t, string(data), "payment_item: invoice_id=INV-1, po_number=PO-1, item_id=ITEM-1")

	// Exactly one processed-invoice record, result APPROVED.
	records := fx.processed.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "INV-1", records[0].InvoiceID)
	assert.Equal(t, ResultApproved, records[0].ProcessingResult)

	// No exception artifacts.
	_, err = os.Stat(filepath.Join(fx.dir, ledger.LedgerFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestRouteBillingFailure(t *testing.T) {
	fx := newRouterFixture(t)
	report := withFailure(passingReport("1500", 1.0), validate.ToolBilling,
		validate.InvoiceExceedsPO{BillingAmount: dec("1500"), POTotalValue: dec("1000")})

	d, err := fx.router.Route(report)
	require.NoError(t, err)

	assert.Equal(t, DispositionRejected, d.Disposition)
	assert.Equal(t, QueueBilling, d.Queue)
	assert.Equal(t, PriorityHigh, d.Priority)
	assert.True(t, d.RequiresApproval)
	assert.Equal(t, "REJECTED_BILLING_DISCREPANCIES", d.ProcessingResult)
	assert.Regexp(t, exceptionIDPattern, d.ExceptionID)

	records, err := fx.writer.ReadQueue(QueueBilling)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, d.ExceptionID, rec.ExceptionID)
	assert.Equal(t, ledger.ExceptionType, rec.Type)
	assert.Equal(t, ledger.StatusOpen, rec.Status)
	assert.Equal(t, "INV-1", rec.InvoiceID)
	assert.Equal(t, "PO-1", rec.PONumber)
	require.NotNil(t, rec.Amount)
	assert.True(t, rec.Amount.Equal(dec("1500")))
	assert.True(t, rec.ManagerApprovalRequired)
	assert.Contains(t, rec.Context, "exceeds PO total_value")
	assert.Equal(t, suggestedActions[QueueBilling], rec.SuggestedActions)

	// Ledger summary line written alongside.
	data, err := os.ReadFile(filepath.Join(fx.dir, ledger.LedgerFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "id="+d.ExceptionID)
	assert.Contains(t, string(data), "queue="+QueueBilling)

	records2 := fx.processed.Records()
	require.Len(t, records2, 1)
	assert.Equal(t, "REJECTED_BILLING_DISCREPANCIES", records2[0].ProcessingResult)
}

func TestRouteHighValuePending(t *testing.T) {
	fx := newRouterFixture(t)
	d, err := fx.router.Route(passingReport("15000", 1.0))
	require.NoError(t, err)

	assert.Equal(t, DispositionPending, d.Disposition)
	assert.Equal(t, QueueHighValue, d.Queue)
	assert.Equal(t, ResultPendingApproval, d.ProcessingResult)
	assert.True(t, d.RequiresApproval)
	assert.Contains(t, d.RoutingReason, "$15,000.00")
	assert.Contains(t, d.RoutingReason, "$10,000.00")

	records, err := fx.writer.ReadQueue(QueueHighValue)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Context, "Overall confidence 1.00.")
}

func TestRouteHighValueBoundaryIsExclusive(t *testing.T) {
	fx := newRouterFixture(t)
	// Exactly 10000 is not above the threshold.
	d, err := fx.router.Route(passingReport("10000", 1.0))
	require.NoError(t, err)
	assert.Equal(t, DispositionApproved, d.Disposition)
}

func TestRouteReviewConfidencePending(t *testing.T) {
	fx := newRouterFixture(t)
	d, err := fx.router.Route(passingReport("1000", 0.85))
	require.NoError(t, err)

	assert.Equal(t, DispositionPending, d.Disposition)
	assert.Equal(t, QueueHighValue, d.Queue)
	assert.Contains(t, d.RoutingReason, "0.85")
	assert.Contains(t, d.RoutingReason, "review threshold")
}

func TestRouteLowConfidenceRejected(t *testing.T) {
	fx := newRouterFixture(t)
	d, err := fx.router.Route(passingReport("1000", 0.65))
	require.NoError(t, err)

	assert.Equal(t, DispositionRejected, d.Disposition)
	assert.Equal(t, QueueLowConfidence, d.Queue)
	assert.Equal(t, "REJECTED_LOW_CONFIDENCE_MATCHES", d.ProcessingResult)
}

func TestRouteDuplicateRejected(t *testing.T) {
	fx := newRouterFixture(t)
	report := withFailure(passingReport("1000", 1.0), validate.ToolDuplicates,
		validate.DuplicateMatch{
			DuplicateKind:    "potential_duplicate",
			Confidence:       1.0,
			MatchedInvoiceID: "INV-1",
			MatchedResult:    "APPROVED",
			MatchedTimestamp: "2024-05-01T09:00:00Z",
			Reasons:          []string{"Same invoice number", "Same billing amount"},
		})

	d, err := fx.router.Route(report)
	require.NoError(t, err)

	assert.Equal(t, QueueDuplicates, d.Queue)
	assert.Equal(t, "REJECTED_DUPLICATE_INVOICES", d.ProcessingResult)

	records, err := fx.writer.ReadQueue(QueueDuplicates)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Context, "Match reason: Same invoice number")
	assert.Contains(t, records[0].Context, "Match reason: Same billing amount")
	assert.Contains(t, records[0].Context, "Duplicate confidence 1.00 against invoice INV-1")
}

func TestRouteMissingDataRejected(t *testing.T) {
	fx := newRouterFixture(t)
	report := &validate.Report{
		Validation: validate.StatusFail,
		Resolution: &entity.Resolution{SourcePath: "NOPE.json"},
		ToolResults: []validate.ToolResult{{
			ToolID: validate.ToolDependencyCheck,
			Status: validate.StatusFail,
			Exceptions: []validate.Exception{
				validate.DocumentNotFound{Document: "invoice"},
				validate.DocumentNotFound{Document: "po_item"},
				validate.DocumentNotFound{Document: "contract"},
			},
		}},
	}

	d, err := fx.router.Route(report)
	require.NoError(t, err)
	assert.Equal(t, QueueMissingData, d.Queue)
	assert.Equal(t, "Missing documents: invoice, po_item, contract", d.RoutingReason)

	records, err := fx.writer.ReadQueue(QueueMissingData)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	// No invoice resolved: the record is keyed by the requested filename.
	assert.Equal(t, "NOPE.json", rec.InvoiceID)
	assert.Nil(t, rec.Amount)
	assert.Contains(t, rec.Context, "invoice: <not found>")

	processed := fx.processed.Records()
	require.Len(t, processed, 1)
	assert.Equal(t, "NOPE.json", processed[0].InvoiceID)
	assert.Equal(t, "REJECTED_MISSING_DATA", processed[0].ProcessingResult)
}

func TestRouteSupplierMismatchMediumNoApproval(t *testing.T) {
	fx := newRouterFixture(t)
	report := withFailure(passingReport("1000", 1.0), validate.ToolSupplierMatch,
		validate.FieldMismatch{
			MismatchKind:  "supplier_name_mismatch",
			Field:         "supplier_info.name",
			InvoiceValue:  "Acme  Manufacturing",
			ExpectedValue: "Acme Manufacturing",
		})

	d, err := fx.router.Route(report)
	require.NoError(t, err)

	assert.Equal(t, QueueSupplier, d.Queue)
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.False(t, d.RequiresApproval)

	records, err := fx.writer.ReadQueue(QueueSupplier)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].ManagerApprovalRequired)
}

func TestRouteDateViolationMediumNoApproval(t *testing.T) {
	fx := newRouterFixture(t)
	report := withFailure(passingReport("1000", 1.0), validate.ToolDates,
		validate.DateViolation{ViolationKind: "due_date_mismatch", Field: "due_date", Value: "2024-06-30", Expected: "2024-07-01"})

	d, err := fx.router.Route(report)
	require.NoError(t, err)
	assert.Equal(t, QueueDates, d.Queue)
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.False(t, d.RequiresApproval)
}

func TestRoutePriorityOrder(t *testing.T) {
	fx := newRouterFixture(t)
	// Duplicate, line item, and billing failures together: the duplicate
	// queue wins.
	report := passingReport("1500", 1.0)
	withFailure(report, validate.ToolDuplicates, validate.DuplicateMatch{DuplicateKind: "potential_duplicate", Confidence: 0.9, MatchedInvoiceID: "INV-0"})
	withFailure(report, validate.ToolLineItems, validate.LineItemDiscrepancy{DiscrepancyKind: "line_item_unit_price", ItemID: "ITEM-1"})
	withFailure(report, validate.ToolBilling, validate.BillingMismatch{Subtotal: dec("900"), TaxAmount: dec("100"), BillingAmount: dec("1500")})

	d, err := fx.router.Route(report)
	require.NoError(t, err)
	assert.Equal(t, QueueDuplicates, d.Queue)

	// Same failures minus the duplicate: line items outrank billing.
	fx2 := newRouterFixture(t)
	report2 := passingReport("1500", 1.0)
	withFailure(report2, validate.ToolLineItems, validate.LineItemDiscrepancy{DiscrepancyKind: "line_item_unit_price", ItemID: "ITEM-1"})
	withFailure(report2, validate.ToolBilling, validate.BillingMismatch{Subtotal: dec("900"), TaxAmount: dec("100"), BillingAmount: dec("1500")})

	d2, err := fx2.router.Route(report2)
	require.NoError(t, err)
	assert.Equal(t, QueuePrice, d2.Queue)
}

func TestRoutePossibleDuplicateAnnotationSurfaces(t *testing.T) {
	fx := newRouterFixture(t)
	report := passingReport("1500", 1.0)
	// Billing fails; the duplicate tool passed but carries an annotation.
	withFailure(report, validate.ToolBilling,
		validate.InvoiceExceedsPO{BillingAmount: dec("1500"), POTotalValue: dec("1000")})
	for i := range report.ToolResults {
		if report.ToolResults[i].ToolID == validate.ToolDuplicates {
			report.ToolResults[i].Exceptions = []validate.Exception{
				validate.DuplicateMatch{
					DuplicateKind:    "possible_duplicate",
					Confidence:       0.6,
					MatchedInvoiceID: "INV-0",
				},
			}
		}
	}

	d, err := fx.router.Route(report)
	require.NoError(t, err)
	assert.Equal(t, QueueBilling, d.Queue)

	records, err := fx.writer.ReadQueue(QueueBilling)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, strings.Contains(records[0].Context, "Note: matches processed invoice INV-0"))
}

func TestNewExceptionID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := newExceptionID()
		assert.Regexp(t, exceptionIDPattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
