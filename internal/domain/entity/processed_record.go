package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessedInvoice is one fingerprint record in the append-only
// processed-invoice log. Records are never mutated and retained
// indefinitely.
type ProcessedInvoice struct {
	Timestamp        string          `json:"timestamp"`
	InvoiceID        string          `json:"invoice_id"`
	SupplierName     string          `json:"supplier_name"`
	VendorID         string          `json:"vendor_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	BillingAmount    decimal.Decimal `json:"billing_amount"`
	PONumber         string          `json:"po_number"`
	ProcessingResult string          `json:"processing_result"`
	LineItemsCount   int             `json:"line_items_count"`
	IssueDate        string          `json:"issue_date"`
}

// NewProcessedInvoice builds the fingerprint record for an invoice with the
// disposition triage settled on.
func NewProcessedInvoice(inv *Invoice, result string, now time.Time) ProcessedInvoice {
	return ProcessedInvoice{
		Timestamp:        now.UTC().Format(time.RFC3339),
		InvoiceID:        inv.InvoiceID,
		SupplierName:     inv.SupplierInfo.Name,
		VendorID:         inv.SupplierInfo.VendorID,
		InvoiceNumber:    inv.InvoiceID,
		BillingAmount:    inv.Summary.BillingAmount,
		PONumber:         inv.PurchaseOrderNumber,
		ProcessingResult: result,
		LineItemsCount:   len(inv.LineItems),
		IssueDate:        inv.IssueDate,
	}
}
