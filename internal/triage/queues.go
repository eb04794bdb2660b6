package triage

// Exception queue names. Each queue collects one characteristic failure
// mode awaiting human review.
const (
	QueueDuplicates    = "duplicate_invoices"
	QueueMissingData   = "missing_data"
	QueueLowConfidence = "low_confidence_matches"
	QueuePrice         = "price_discrepancies"
	QueueSupplier      = "supplier_mismatch"
	QueueBilling       = "billing_discrepancies"
	QueueDates         = "date_discrepancies"
	QueueHighValue     = "high_value_approval"
)

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Dispositions.
const (
	DispositionApproved = "APPROVED"
	DispositionPending  = "PENDING_APPROVAL"
	DispositionRejected = "REJECTED"
)

// Processing results recorded in the processed-invoice log.
const (
	ResultApproved        = "APPROVED"
	ResultPendingApproval = "PENDING_MANAGER_APPROVAL"
)

// AllQueues lists every queue in routing-priority order.
var AllQueues = []string{
	QueueDuplicates,
	QueueMissingData,
	QueueLowConfidence,
	QueuePrice,
	QueueSupplier,
	QueueBilling,
	QueueDates,
	QueueHighValue,
}

// suggestedActions lists the follow-up actions embedded in each queue's
// exception records.
var suggestedActions = map[string][]string{
	QueueDuplicates: {
		"Compare against the previously processed invoice listed in CONTEXT",
		"Confirm with the supplier whether this is a resubmission or a revised invoice",
		"Reject the invoice if it duplicates an already paid submission",
	},
	QueueMissingData: {
		"Verify the invoice references an existing purchase order",
		"Request the missing PO or contract document from procurement",
		"Re-run processing once the missing documents are on file",
	},
	QueueLowConfidence: {
		"Manually confirm the purchase order the invoice belongs to",
		"Check the supplier name and vendor ID against the contract",
		"Correct the invoice's PO number with the supplier if mistyped",
	},
	QueuePrice: {
		"Review the line item discrepancies listed in VALIDATION_DETAILS",
		"Compare invoice unit prices and quantities against the purchase order",
		"Request a corrected invoice for any overbilled lines",
	},
	QueueSupplier: {
		"Compare the supplier details character by character against the contract",
		"Confirm whether the supplier legal name has changed",
		"Update the contract record if the new name is legitimate",
	},
	QueueBilling: {
		"Recompute subtotal + tax against the billing amount",
		"Check the billing amount against the PO total value",
		"Request a corrected invoice if the arithmetic does not reconcile",
	},
	QueueDates: {
		"Check the invoice issue date against the contract validity window",
		"Verify the due date honors the stated payment terms",
		"Confirm the PO was effective when the invoice was issued",
	},
	QueueHighValue: {
		"Obtain manager approval before releasing payment",
		"Verify budget availability for the billed amount",
		"Spot-check the resolved PO and contract match",
	},
}
