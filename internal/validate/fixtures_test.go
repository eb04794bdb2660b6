package validate

import (
	"github.com/shopspring/decimal"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// cleanInvoice returns an invoice that passes every validator against
// cleanPO and cleanContract.
func cleanInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceID:           "INV-1",
		PurchaseOrderNumber: "PO-1",
		SupplierInfo:        entity.SupplierInfo{Name: "Acme Manufacturing", VendorID: "V-100"},
		BillToInfo:          entity.BillToInfo{Name: "Globex Corp"},
		IssueDate:           "2024-06-01",
		DueDate:             "2024-07-01",
		PaymentTerms:        "Net 30",
		Currency:            "USD",
		Summary: entity.InvoiceSummary{
			Subtotal:      dec("900"),
			TaxAmount:     dec("100"),
			BillingAmount: dec("1000"),
		},
		LineItems: []entity.LineItem{{
			ItemID:      "ITEM-1",
			Description: "Steel mounting brackets",
			Quantity:    dec("10"),
			UnitPrice:   dec("100"),
			LineTotal:   dec("1000"),
		}},
	}
}

func cleanPO() *entity.POItem {
	return &entity.POItem{
		PONumber:      "PO-1",
		ContractID:    "CTR-001",
		EffectiveDate: "2024-01-01",
		TotalValue:    dec("1000"),
		Description:   "Steel mounting brackets",
		LineItems: []entity.LineItem{{
			ItemID:      "ITEM-1",
			Description: "Steel mounting brackets",
			Quantity:    dec("10"),
			UnitPrice:   dec("100"),
			LineTotal:   dec("1000"),
		}},
	}
}

func cleanContract() *entity.Contract {
	return &entity.Contract{
		ContractID: "CTR-001",
		Parties: entity.ContractParties{
			Supplier: entity.ContractParty{Name: "Acme Manufacturing", VendorID: "V-100"},
			Client:   entity.ContractParty{Name: "Globex Corp"},
		},
		ContractMetadata: entity.ContractMetadata{
			EffectiveDate: "2024-01-01",
			EndDate:       "2024-12-31",
		},
		PaymentTerms: "Net 30",
		Currency:     "USD",
	}
}

func kinds(result ToolResult) []string {
	var out []string
	for _, e := range result.Exceptions {
		out = append(out, e.Kind())
	}
	return out
}
