package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/apexfin/invoice-triage/internal/ledger"
	"github.com/apexfin/invoice-triage/internal/validate"
)

// buildRecord assembles the canonical exception record for a rejected or
// pending invoice, embedding the queue-specific diagnostics.
func (r *Router) buildRecord(report *validate.Report, d *Decision, now time.Time) *ledger.ExceptionRecord {
	res := report.Resolution
	rec := &ledger.ExceptionRecord{
		ExceptionID:             d.ExceptionID,
		Type:                    ledger.ExceptionType,
		Status:                  ledger.StatusOpen,
		Queue:                   d.Queue,
		Priority:                d.Priority,
		Timestamp:               now,
		RoutingReason:           d.RoutingReason,
		ManagerApprovalRequired: d.RequiresApproval,
		SuggestedActions:        suggestedActions[d.Queue],
	}

	if res.Invoice != nil {
		rec.InvoiceID = res.Invoice.InvoiceID
		amount := res.Invoice.Summary.BillingAmount
		rec.Amount = &amount
		rec.Supplier = res.Invoice.SupplierInfo.Name
	} else {
		rec.InvoiceID = res.SourcePath
	}
	if res.POItem != nil {
		rec.PONumber = res.POItem.PONumber
	} else if res.Invoice != nil {
		rec.PONumber = res.Invoice.PurchaseOrderNumber
	}

	rec.ValidationDetails = detailBlocks(report)
	rec.Context = contextFor(report, d)
	rec.Metadata = metadataFor(report, d)
	return rec
}

// detailBlocks renders one block per failed tool: the tool id and status,
// then one line per exception.
func detailBlocks(report *validate.Report) []ledger.DetailBlock {
	var blocks []ledger.DetailBlock
	for _, tr := range report.ToolResults {
		if tr.Passed() && len(tr.Exceptions) == 0 {
			continue
		}
		block := ledger.DetailBlock{
			{Key: "tool", Value: tr.ToolID},
			{Key: "status", Value: string(tr.Status)},
		}
		for _, exc := range tr.Exceptions {
			block = append(block, ledger.Field{Key: exc.Kind(), Value: exc.Describe()})
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// contextFor writes the multi-line, queue-specific context section.
func contextFor(report *validate.Report, d *Decision) string {
	res := report.Resolution
	var lines []string

	switch d.Queue {
	case QueueDuplicates:
		if tr, ok := report.Result(validate.ToolDuplicates); ok {
			for _, exc := range tr.Exceptions {
				if dup, ok := exc.(validate.DuplicateMatch); ok {
					lines = append(lines,
						fmt.Sprintf("Duplicate confidence %.2f against invoice %s (processed %s, result %s).",
							dup.Confidence, dup.MatchedInvoiceID, dup.MatchedTimestamp, dup.MatchedResult))
					for _, reason := range dup.Reasons {
						lines = append(lines, "Match reason: "+reason)
					}
				}
			}
		}
	case QueueMissingData:
		for _, m := range res.MissingParts() {
			lines = append(lines, m+": <not found>")
		}
	case QueueLowConfidence, QueueHighValue:
		lines = append(lines,
			fmt.Sprintf("PO match: %s, confidence %.2f.",
				res.Matching.POMatch.MatchType, res.Matching.POMatch.Confidence),
			fmt.Sprintf("Supplier match: %s, confidence %.2f.",
				res.Matching.SupplierMatch.MatchType, res.Matching.SupplierMatch.Confidence),
			fmt.Sprintf("Overall confidence %.2f.", res.Matching.OverallConfidence))
	default:
		for _, tr := range report.ToolResults {
			for _, exc := range tr.Failures() {
				lines = append(lines, exc.Describe())
			}
		}
	}

	// Surface moderate duplicate annotations everywhere they exist.
	if tr, ok := report.Result(validate.ToolDuplicates); ok && tr.Passed() {
		for _, exc := range tr.Exceptions {
			if exc.Kind() == "possible_duplicate" {
				lines = append(lines, "Note: "+exc.Describe())
			}
		}
	}

	return strings.Join(lines, "\n")
}

func metadataFor(report *validate.Report, d *Decision) []ledger.Field {
	res := report.Resolution
	meta := []ledger.Field{
		{Key: "processing_result", Value: d.ProcessingResult},
		{Key: "overall_confidence", Value: fmt.Sprintf("%.2f", res.Matching.OverallConfidence)},
		{Key: "validation", Value: string(report.Validation)},
	}
	if res.SourcePath != "" {
		meta = append(meta, ledger.Field{Key: "source_path", Value: res.SourcePath})
	}
	return meta
}
