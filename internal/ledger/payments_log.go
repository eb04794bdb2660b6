package ledger

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

// PaymentsFileName is the payments log file under the log dir.
const PaymentsFileName = "payments.log"

// PaymentsLog records approved invoices handed off to the payment system.
type PaymentsLog struct {
	path     string
	appender *Appender
	logger   *zap.Logger
}

// NewPaymentsLog creates the log rooted at dir.
func NewPaymentsLog(dir string, appender *Appender, logger *zap.Logger) *PaymentsLog {
	return &PaymentsLog{
		path:     filepath.Join(dir, PaymentsFileName),
		appender: appender,
		logger:   logger,
	}
}

// Path returns the log file path.
func (l *PaymentsLog) Path() string { return l.path }

// AppendApproval writes one [INFO] line for the invoice plus one
// payment_item line per invoice line item, as a single atomic append.
func (l *PaymentsLog) AppendApproval(inv *entity.Invoice, po *entity.POItem, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[INFO] [%s] Invoice %s approved. Routing to Payment System.",
		now.UTC().Format(time.RFC3339), inv.InvoiceID)

	poNumber := inv.PurchaseOrderNumber
	if po != nil {
		poNumber = po.PONumber
	}
	for _, item := range inv.LineItems {
		fmt.Fprintf(&b, "\n    payment_item: invoice_id=%s, po_number=%s, item_id=%s, description=%s, amount=%s",
			inv.InvoiceID, poNumber, item.ItemID, item.Description, item.LineTotal.StringFixed(2))
	}

	l.logger.Info("Invoice approved for payment",
		zap.String("invoice_id", inv.InvoiceID),
		zap.String("po_number", poNumber),
		zap.Int("line_items", len(inv.LineItems)))
	return l.appender.Append(l.path, b.String())
}
