package entity

import "github.com/shopspring/decimal"

// SupplierInfo identifies the party that issued the invoice.
type SupplierInfo struct {
	Name     string `json:"name"`
	VendorID string `json:"vendor_id"`
}

// BillToInfo identifies the party being billed.
type BillToInfo struct {
	Name string `json:"name"`
}

// InvoiceSummary carries the invoice-level monetary totals.
// Invariant: Subtotal + TaxAmount == BillingAmount to two decimals.
type InvoiceSummary struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	BillingAmount decimal.Decimal `json:"billing_amount"`
}

// LineItem is a single billed or ordered line. The same shape is used on
// invoices and on purchase order items.
type LineItem struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Invoice represents an incoming supplier invoice as loaded from the
// document store.
type Invoice struct {
	InvoiceID           string         `json:"invoice_id"`
	PurchaseOrderNumber string         `json:"purchase_order_number"`
	SupplierInfo        SupplierInfo   `json:"supplier_info"`
	BillToInfo          BillToInfo     `json:"bill_to_info"`
	IssueDate           string         `json:"issue_date"`
	DueDate             string         `json:"due_date"`
	PaymentTerms        string         `json:"payment_terms"`
	Currency            string         `json:"currency"`
	Summary             InvoiceSummary `json:"summary"`
	LineItems           []LineItem     `json:"line_items"`
}
