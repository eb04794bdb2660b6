package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Severity of a structured exception. FAIL-severity exceptions fail the
// tool result; INFO-severity ones only annotate it.
type Severity string

const (
	SeverityFail Severity = "FAIL"
	SeverityInfo Severity = "INFO"
)

// Exception is a typed validation failure. One variant exists per kind;
// free-form text is allowed for simple failures via Note.
type Exception interface {
	Kind() string
	Severity() Severity
	Describe() string
}

// Note is a free-form exception for simple failures.
type Note struct {
	NoteKind string
	Text     string
	Level    Severity
}

func (n Note) Kind() string { return n.NoteKind }
func (n Note) Severity() Severity {
	if n.Level == "" {
		return SeverityFail
	}
	return n.Level
}
func (n Note) Describe() string { return n.Text }

// FieldMismatch reports an exact-equality failure between an invoice
// field and its contract counterpart, with a character-position diff.
type FieldMismatch struct {
	MismatchKind    string // e.g. supplier_name_mismatch
	Field           string
	InvoiceValue    string
	ExpectedValue   string
	DiffDescription string
	Method          string // exact_match
	Threshold       string // "100% exact match required"
}

func (f FieldMismatch) Kind() string       { return f.MismatchKind }
func (f FieldMismatch) Severity() Severity { return SeverityFail }
func (f FieldMismatch) Describe() string {
	return fmt.Sprintf("%s: invoice %q vs expected %q (%s)",
		f.Field, f.InvoiceValue, f.ExpectedValue, f.DiffDescription)
}

// BillingMismatch reports subtotal + tax != billing_amount.
type BillingMismatch struct {
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	BillingAmount decimal.Decimal
}

func (b BillingMismatch) Kind() string       { return "billing_amount_mismatch" }
func (b BillingMismatch) Severity() Severity { return SeverityFail }
func (b BillingMismatch) Describe() string {
	return fmt.Sprintf("subtotal %s + tax %s = %s does not equal billing_amount %s",
		b.Subtotal.StringFixed(2), b.TaxAmount.StringFixed(2),
		b.Subtotal.Add(b.TaxAmount).StringFixed(2), b.BillingAmount.StringFixed(2))
}

// InvoiceExceedsPO reports billing_amount above the PO total value.
type InvoiceExceedsPO struct {
	BillingAmount decimal.Decimal
	POTotalValue  decimal.Decimal
}

func (e InvoiceExceedsPO) Kind() string       { return "invoice_exceeds_po" }
func (e InvoiceExceedsPO) Severity() Severity { return SeverityFail }
func (e InvoiceExceedsPO) Describe() string {
	return fmt.Sprintf("billing_amount %s exceeds PO total_value %s by %s",
		e.BillingAmount.StringFixed(2), e.POTotalValue.StringFixed(2),
		e.BillingAmount.Sub(e.POTotalValue).StringFixed(2))
}

// DateParseError reports an unparseable date field. It short-circuits the
// date validator: no other date checks run.
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (d DateParseError) Kind() string       { return "date_parse_error" }
func (d DateParseError) Severity() Severity { return SeverityFail }
func (d DateParseError) Describe() string {
	return fmt.Sprintf("%s %q is not a valid YYYY-MM-DD date: %v", d.Field, d.Value, d.Err)
}

// DateViolation reports a date rule failure.
type DateViolation struct {
	ViolationKind string // issue_date_outside_contract, due_date_mismatch, issue_before_po_effective
	Field         string
	Value         string
	Expected      string
}

func (d DateViolation) Kind() string       { return d.ViolationKind }
func (d DateViolation) Severity() Severity { return SeverityFail }
func (d DateViolation) Describe() string {
	return fmt.Sprintf("%s %s: expected %s", d.Field, d.Value, d.Expected)
}

// LineItemDiscrepancy reports a per-line mismatch between invoice and PO.
type LineItemDiscrepancy struct {
	DiscrepancyKind string // line_item_unit_price, line_item_quantity, line_item_total
	ItemID          string
	InvoiceValue    decimal.Decimal
	POValue         decimal.Decimal
	PercentDiff     float64
	Level           Severity
}

func (l LineItemDiscrepancy) Kind() string { return l.DiscrepancyKind }
func (l LineItemDiscrepancy) Severity() Severity {
	if l.Level == "" {
		return SeverityFail
	}
	return l.Level
}
func (l LineItemDiscrepancy) Describe() string {
	return fmt.Sprintf("item %s: invoice %s vs PO %s (%.1f%% difference)",
		l.ItemID, l.InvoiceValue.String(), l.POValue.String(), l.PercentDiff)
}

// DescriptionMismatch reports an invoice line whose description shares too
// few words with the PO description.
type DescriptionMismatch struct {
	ItemID      string
	Description string
	Overlap     float64
}

func (d DescriptionMismatch) Kind() string       { return "description_mismatch" }
func (d DescriptionMismatch) Severity() Severity { return SeverityFail }
func (d DescriptionMismatch) Describe() string {
	return fmt.Sprintf("item %s description %q has %.0f%% word overlap with the PO description",
		d.ItemID, d.Description, d.Overlap*100)
}

// UninvoicedItems lists PO lines with no invoice counterpart. Informational.
type UninvoicedItems struct {
	ItemIDs []string
}

func (u UninvoicedItems) Kind() string       { return "uninvoiced_items" }
func (u UninvoicedItems) Severity() Severity { return SeverityInfo }
func (u UninvoicedItems) Describe() string {
	return fmt.Sprintf("PO items not yet invoiced: %s", strings.Join(u.ItemIDs, ", "))
}

// DuplicateMatch reports a processed-log record resembling the current
// invoice. High-confidence matches are FAIL (potential_duplicate);
// moderate ones are INFO annotations (possible_duplicate).
type DuplicateMatch struct {
	DuplicateKind    string // potential_duplicate, possible_duplicate
	Confidence       float64
	MatchedInvoiceID string
	MatchedResult    string
	MatchedTimestamp string
	Reasons          []string
}

func (d DuplicateMatch) Kind() string { return d.DuplicateKind }
func (d DuplicateMatch) Severity() Severity {
	if d.DuplicateKind == "potential_duplicate" {
		return SeverityFail
	}
	return SeverityInfo
}
func (d DuplicateMatch) Describe() string {
	return fmt.Sprintf("matches processed invoice %s with confidence %.2f: %s",
		d.MatchedInvoiceID, d.Confidence, strings.Join(d.Reasons, "; "))
}

// DocumentNotFound reports a missing document of the resolved triple.
type DocumentNotFound struct {
	Document string // invoice, po_item, contract
}

func (d DocumentNotFound) Kind() string       { return d.Document + "_not_found" }
func (d DocumentNotFound) Severity() Severity { return SeverityFail }
func (d DocumentNotFound) Describe() string   { return d.Document + ": <not found>" }
