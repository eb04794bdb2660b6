package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/apexfin/invoice-triage/internal/docstore"
	"github.com/apexfin/invoice-triage/internal/worker"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every invoice in the repository's invoice directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := a.pipe.Store.ListJSON(docstore.InvoiceDir)
			if len(files) == 0 {
				cmd.Println("No invoice documents found.")
				return nil
			}

			n := workers
			if n <= 0 {
				n = a.cfg.Batch.Workers
			}
			pool := worker.NewPool(a.pipe, n, a.logger)
			summary, err := pool.ProcessAll(cmd.Context(), files)

			cmd.Printf("Processed: %d\n", summary.Processed)
			cmd.Printf("  approved: %d\n", summary.Approved)
			cmd.Printf("  pending approval: %d\n", summary.Pending)
			cmd.Printf("  rejected: %d\n", summary.Rejected)
			if summary.Failed > 0 {
				cmd.Printf("  failed: %d\n", summary.Failed)
			}
			if len(summary.Queued) > 0 {
				cmd.Println("Queues:")
				queues := make([]string, 0, len(summary.Queued))
				for q := range summary.Queued {
					queues = append(queues, q)
				}
				sort.Strings(queues)
				for _, q := range queues {
					cmd.Printf("  %s: %d\n", q, summary.Queued[q])
				}
			}
			return err
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default from config)")
	return cmd
}
