package entity

import "github.com/shopspring/decimal"

// POItem is a purchase order item governed by a contract.
// Invariant: sum(LineItems.LineTotal) <= TotalValue.
type POItem struct {
	PONumber      string          `json:"po_number"`
	ContractID    string          `json:"contract_id"`
	EffectiveDate string          `json:"effective_date"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Description   string          `json:"description"`
	LineItems     []LineItem      `json:"line_items"`
}
