package validate

import (
	"time"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// net30Terms is the payment-terms value that pins the due date to exactly
// issue date + 30 days.
const net30Terms = "Net 30"

// CheckDates validates the invoice dates against the contract window, the
// payment terms, and the PO effective date. The first unparseable date
// short-circuits to a single parse-error exception; no other checks run on
// that path.
func CheckDates(inv *entity.Invoice, po *entity.POItem, contract *entity.Contract) ToolResult {
	result := ToolResult{ToolID: ToolDates}

	parse := func(field, value string) (time.Time, bool) {
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			result.Exceptions = []Exception{DateParseError{Field: field, Value: value, Err: err}}
			return time.Time{}, false
		}
		return t, true
	}

	issue, ok := parse("invoice.issue_date", inv.IssueDate)
	if !ok {
		result.finish()
		return result
	}
	effective, ok := parse("contract.effective_date", contract.ContractMetadata.EffectiveDate)
	if !ok {
		result.finish()
		return result
	}
	end, ok := parse("contract.end_date", contract.ContractMetadata.EndDate)
	if !ok {
		result.finish()
		return result
	}

	if issue.Before(effective) || issue.After(end) {
		result.Exceptions = append(result.Exceptions, DateViolation{
			ViolationKind: "issue_date_outside_contract",
			Field:         "invoice.issue_date",
			Value:         inv.IssueDate,
			Expected: "within contract window [" +
				contract.ContractMetadata.EffectiveDate + ", " +
				contract.ContractMetadata.EndDate + "]",
		})
	}

	if inv.PaymentTerms == net30Terms {
		due, ok := parse("invoice.due_date", inv.DueDate)
		if !ok {
			result.finish()
			return result
		}
		want := issue.AddDate(0, 0, 30)
		if !due.Equal(want) {
			result.Exceptions = append(result.Exceptions, DateViolation{
				ViolationKind: "due_date_mismatch",
				Field:         "invoice.due_date",
				Value:         inv.DueDate,
				Expected:      "exactly issue_date + 30 days (" + want.Format(dateLayout) + ") under Net 30 terms",
			})
		}
	}

	if po.EffectiveDate != "" {
		poEffective, ok := parse("po_item.effective_date", po.EffectiveDate)
		if !ok {
			result.finish()
			return result
		}
		if issue.Before(poEffective) {
			result.Exceptions = append(result.Exceptions, DateViolation{
				ViolationKind: "issue_before_po_effective",
				Field:         "invoice.issue_date",
				Value:         inv.IssueDate,
				Expected:      "on or after PO effective_date " + po.EffectiveDate,
			})
		}
	}

	result.finish()
	return result
}
