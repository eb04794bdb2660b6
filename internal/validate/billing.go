package validate

import (
	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

// CheckBilling validates the invoice's own arithmetic
// (subtotal + tax == billing_amount to two decimals) and that the billing
// amount does not exceed the PO item's total value.
func CheckBilling(inv *entity.Invoice, po *entity.POItem) ToolResult {
	result := ToolResult{ToolID: ToolBilling}

	sum := inv.Summary.Subtotal.Add(inv.Summary.TaxAmount).Round(2)
	if !sum.Equal(inv.Summary.BillingAmount.Round(2)) {
		result.Exceptions = append(result.Exceptions, BillingMismatch{
			Subtotal:      inv.Summary.Subtotal,
			TaxAmount:     inv.Summary.TaxAmount,
			BillingAmount: inv.Summary.BillingAmount,
		})
	}

	if inv.Summary.BillingAmount.GreaterThan(po.TotalValue) {
		result.Exceptions = append(result.Exceptions, InvoiceExceedsPO{
			BillingAmount: inv.Summary.BillingAmount,
			POTotalValue:  po.TotalValue,
		})
	}

	result.finish()
	return result
}
