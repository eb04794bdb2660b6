package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

// Word-overlap thresholds for description comparison.
const (
	descOverlapMin = 0.3 // invoice line vs PO description
	descPairingMin = 0.8 // invoice line vs PO line, for pairing
)

// CheckLineItems reconciles invoice line items against the PO item. The
// checks depend on which sides carry line items: with neither, the result
// is PASS and billing arithmetic is left to the billing validator.
func CheckLineItems(inv *entity.Invoice, po *entity.POItem) ToolResult {
	result := ToolResult{ToolID: ToolLineItems}

	invHas := len(inv.LineItems) > 0
	poHas := len(po.LineItems) > 0

	switch {
	case !invHas && !poHas:
		// Deferred to the billing validator.
	case invHas && !poHas:
		checkInvoiceOnly(&result, inv, po)
	case !invHas && poHas:
		checkPOOnly(&result, inv, po)
	default:
		reconcilePairs(&result, inv, po)
	}

	result.finish()
	return result
}

// checkInvoiceOnly validates invoice lines against the PO header fields.
func checkInvoiceOnly(result *ToolResult, inv *entity.Invoice, po *entity.POItem) {
	sum := decimal.Zero
	for _, item := range inv.LineItems {
		sum = sum.Add(item.LineTotal)
	}
	if !sum.Round(2).Equal(inv.Summary.BillingAmount.Round(2)) {
		result.Exceptions = append(result.Exceptions, Note{
			NoteKind: "line_items_total_mismatch",
			Text: fmt.Sprintf("line item totals sum to %s but billing_amount is %s",
				sum.StringFixed(2), inv.Summary.BillingAmount.StringFixed(2)),
		})
	}
	if inv.Summary.BillingAmount.GreaterThan(po.TotalValue) {
		result.Exceptions = append(result.Exceptions, InvoiceExceedsPO{
			BillingAmount: inv.Summary.BillingAmount,
			POTotalValue:  po.TotalValue,
		})
	}
	for _, item := range inv.LineItems {
		overlap := jaccardWordOverlap(item.Description, po.Description)
		if overlap < descOverlapMin {
			result.Exceptions = append(result.Exceptions, DescriptionMismatch{
				ItemID:      item.ItemID,
				Description: item.Description,
				Overlap:     overlap,
			})
		}
	}
}

// checkPOOnly validates the invoice total against the PO lines.
func checkPOOnly(result *ToolResult, inv *entity.Invoice, po *entity.POItem) {
	sum := decimal.Zero
	for _, item := range po.LineItems {
		sum = sum.Add(item.LineTotal)
	}
	if !inv.Summary.BillingAmount.Round(2).Equal(sum.Round(2)) {
		result.Exceptions = append(result.Exceptions, Note{
			NoteKind: "po_line_total_mismatch",
			Text: fmt.Sprintf("billing_amount %s does not equal PO line totals %s",
				inv.Summary.BillingAmount.StringFixed(2), sum.StringFixed(2)),
		})
	}
	if inv.Summary.BillingAmount.GreaterThan(po.TotalValue) {
		result.Exceptions = append(result.Exceptions, InvoiceExceedsPO{
			BillingAmount: inv.Summary.BillingAmount,
			POTotalValue:  po.TotalValue,
		})
	}
}

// reconcilePairs matches invoice lines to PO lines, first by item id, then
// by description overlap among the still-unmatched PO lines, and checks
// each matched pair.
func reconcilePairs(result *ToolResult, inv *entity.Invoice, po *entity.POItem) {
	used := make([]bool, len(po.LineItems))

	for _, item := range inv.LineItems {
		idx := -1
		for j, poItem := range po.LineItems {
			if !used[j] && poItem.ItemID != "" && poItem.ItemID == item.ItemID {
				idx = j
				break
			}
		}
		if idx < 0 {
			bestOverlap := 0.0
			for j, poItem := range po.LineItems {
				if used[j] {
					continue
				}
				overlap := jaccardWordOverlap(item.Description, poItem.Description)
				if overlap >= descPairingMin && overlap > bestOverlap {
					bestOverlap = overlap
					idx = j
				}
			}
		}
		if idx < 0 {
			result.Exceptions = append(result.Exceptions, Note{
				NoteKind: "unmatched_invoice_item",
				Text: fmt.Sprintf("invoice item %s (%q) has no counterpart on PO %s",
					item.ItemID, item.Description, po.PONumber),
			})
			continue
		}
		used[idx] = true
		checkPair(result, item, po.LineItems[idx])
	}

	var uninvoiced []string
	for j, poItem := range po.LineItems {
		if !used[j] {
			uninvoiced = append(uninvoiced, poItem.ItemID)
		}
	}
	if len(uninvoiced) > 0 {
		result.Exceptions = append(result.Exceptions, UninvoicedItems{ItemIDs: uninvoiced})
	}
}

// checkPair validates one matched invoice/PO line pair: unit price to two
// decimals, quantity not above the PO's (below is informational), and the
// invoice line's own arithmetic.
func checkPair(result *ToolResult, item, poItem entity.LineItem) {
	if !item.UnitPrice.Round(2).Equal(poItem.UnitPrice.Round(2)) {
		result.Exceptions = append(result.Exceptions, LineItemDiscrepancy{
			DiscrepancyKind: "line_item_unit_price",
			ItemID:          item.ItemID,
			InvoiceValue:    item.UnitPrice,
			POValue:         poItem.UnitPrice,
			PercentDiff:     percentDiff(item.UnitPrice, poItem.UnitPrice),
		})
	}

	if item.Quantity.GreaterThan(poItem.Quantity) {
		result.Exceptions = append(result.Exceptions, LineItemDiscrepancy{
			DiscrepancyKind: "line_item_quantity",
			ItemID:          item.ItemID,
			InvoiceValue:    item.Quantity,
			POValue:         poItem.Quantity,
			PercentDiff:     percentDiff(item.Quantity, poItem.Quantity),
		})
	} else if item.Quantity.LessThan(poItem.Quantity) {
		result.Exceptions = append(result.Exceptions, LineItemDiscrepancy{
			DiscrepancyKind: "line_item_quantity",
			ItemID:          item.ItemID,
			InvoiceValue:    item.Quantity,
			POValue:         poItem.Quantity,
			PercentDiff:     percentDiff(item.Quantity, poItem.Quantity),
			Level:           SeverityInfo,
		})
	}

	expected := item.UnitPrice.Mul(item.Quantity).Round(2)
	if !item.LineTotal.Round(2).Equal(expected) {
		result.Exceptions = append(result.Exceptions, LineItemDiscrepancy{
			DiscrepancyKind: "line_item_total",
			ItemID:          item.ItemID,
			InvoiceValue:    item.LineTotal,
			POValue:         expected,
			PercentDiff:     percentDiff(item.LineTotal, expected),
		})
	}
}

func percentDiff(a, b decimal.Decimal) float64 {
	if b.IsZero() {
		if a.IsZero() {
			return 0
		}
		return 100
	}
	diff, _ := a.Sub(b).Abs().Div(b.Abs()).Float64()
	return diff * 100
}

// jaccardWordOverlap computes |intersection|/|union| over lower-cased word
// sets of the two strings.
func jaccardWordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
