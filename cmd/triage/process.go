package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/apexfin/invoice-triage/internal/pipeline"
	"github.com/apexfin/invoice-triage/internal/validate"
)

func newProcessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "process <invoice_filename>",
		Short: "Validate and triage a single invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := a.pipe.Process(args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)
			// Exit 0 for any disposition; errors above are infrastructure.
			return nil
		},
	}
}

const notFound = "<not found>"

func printOutcome(cmd *cobra.Command, outcome *pipeline.Outcome) {
	res := outcome.Report.Resolution

	invoiceID, poNumber, contractID := notFound, notFound, notFound
	if res.Invoice != nil {
		invoiceID = res.Invoice.InvoiceID
	}
	if res.POItem != nil {
		poNumber = res.POItem.PONumber
	}
	if res.Contract != nil {
		contractID = res.Contract.ContractID
	}

	cmd.Printf("Resolution:\n")
	cmd.Printf("  invoice:  %s\n", invoiceID)
	cmd.Printf("  po_item:  %s\n", poNumber)
	cmd.Printf("  contract: %s\n", contractID)
	cmd.Printf("  confidence: po=%.2f supplier=%.2f overall=%.2f\n",
		res.Matching.POMatch.Confidence,
		res.Matching.SupplierMatch.Confidence,
		res.Matching.OverallConfidence)

	cmd.Printf("\nTool results:\n")
	for _, tr := range outcome.Report.ToolResults {
		cmd.Printf("  %s: %s\n", tr.ToolID, tr.Status)
		for _, exc := range tr.Exceptions {
			marker := ""
			if exc.Severity() == validate.SeverityInfo {
				marker = " [info]"
			}
			cmd.Printf("    - %s: %s%s\n", exc.Kind(), exc.Describe(), marker)
		}
	}

	cmd.Printf("\nvalidation: %s\n", outcome.Report.Validation)

	d := outcome.Decision
	line := []string{"status=" + d.Disposition}
	if d.ExceptionID != "" {
		line = append(line, "exception_id="+d.ExceptionID)
	}
	if d.Queue != "" {
		line = append(line, "queue="+d.Queue, "priority="+d.Priority)
	}
	cmd.Printf("triage: %s\n", strings.Join(line, " "))
	cmd.Printf("reason: %s\n", d.RoutingReason)
	if d.RequiresApproval {
		cmd.Printf("manager approval required\n")
	}
}
