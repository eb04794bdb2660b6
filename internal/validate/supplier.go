package validate

import (
	"fmt"
	"strings"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

const (
	methodExact        = "exact_match"
	thresholdExactNote = "100% exact match required"
)

// CheckSupplier compares invoice supplier and bill-to details against the
// contract parties with exact string equality. Fuzzy tolerance happens
// upstream during resolution; here any difference is a failure.
func CheckSupplier(inv *entity.Invoice, contract *entity.Contract) ToolResult {
	result := ToolResult{ToolID: ToolSupplierMatch}

	compare := func(kind, field, got, want string) {
		if got == want {
			return
		}
		result.Exceptions = append(result.Exceptions, FieldMismatch{
			MismatchKind:    kind,
			Field:           field,
			InvoiceValue:    got,
			ExpectedValue:   want,
			DiffDescription: describeDiff(got, want),
			Method:          methodExact,
			Threshold:       thresholdExactNote,
		})
	}

	compare("supplier_name_mismatch", "supplier_info.name",
		inv.SupplierInfo.Name, contract.Parties.Supplier.Name)
	compare("vendor_id_mismatch", "supplier_info.vendor_id",
		inv.SupplierInfo.VendorID, contract.Parties.Supplier.VendorID)
	compare("bill_to_name_mismatch", "bill_to_info.name",
		inv.BillToInfo.Name, contract.Parties.Client.Name)

	result.finish()
	return result
}

// describeDiff reports the first differing character position and renders
// both values with spaces made visible, so whitespace-only differences are
// identifiable in the diagnostic.
func describeDiff(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	pos := 0
	for pos < len(ra) && pos < len(rb) && ra[pos] == rb[pos] {
		pos++
	}
	return fmt.Sprintf(
		"values differ at position %d: invoice=%q (%d space(s)) vs expected=%q (%d space(s))",
		pos,
		markSpaces(a), strings.Count(a, " "),
		markSpaces(b), strings.Count(b, " "))
}

func markSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "[SPACE]")
}
