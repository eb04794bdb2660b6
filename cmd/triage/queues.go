package main

import (
	"github.com/spf13/cobra"

	"github.com/apexfin/invoice-triage/internal/ledger"
	"github.com/apexfin/invoice-triage/internal/triage"
)

func newQueuesCmd(a *app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "queues",
		Short: "Summarize the exception queues under system_logs/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, queue := range triage.AllQueues {
				records, err := a.pipe.Writer.ReadQueue(queue)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					continue
				}
				total += len(records)
				cmd.Printf("%s: %d\n", queue, len(records))
				if verbose {
					for _, rec := range records {
						amount := "N/A"
						if rec.Amount != nil {
							amount = ledger.FormatMoney(*rec.Amount)
						}
						cmd.Printf("  %s %s invoice=%s amount=%s %s\n",
							rec.ExceptionID, rec.Status, rec.InvoiceID, amount, rec.RoutingReason)
					}
				}
			}
			if total == 0 {
				cmd.Println("All queues are empty.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list individual exception records")
	return cmd
}
