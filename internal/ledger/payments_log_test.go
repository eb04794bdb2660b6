package ledger

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

func TestPaymentsLogAppendApproval(t *testing.T) {
	log := NewPaymentsLog(t.TempDir(), NewAppender(), zap.NewNop())

	inv := &entity.Invoice{
		InvoiceID:           "INV-1",
		PurchaseOrderNumber: "PO-1",
		LineItems: []entity.LineItem{
			{ItemID: "ITEM-1", Description: "Steel mounting brackets", LineTotal: decimal.RequireFromString("1000")},
			{ItemID: "ITEM-2", Description: "Stainless fasteners", LineTotal: decimal.RequireFromString("50.5")},
		},
	}
	po := &entity.POItem{PONumber: "PO-1"}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, log.AppendApproval(inv, po, now))

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "[INFO] [2024-06-01T12:00:00Z] Invoice INV-1 approved. Routing to Payment System.", lines[0])
	assert.Equal(t, "    payment_item: invoice_id=INV-1, po_number=PO-1, item_id=ITEM-1, description=Steel mounting brackets, amount=1000.00", lines[1])
	assert.Equal(t, "    payment_item: invoice_id=INV-1, po_number=PO-1, item_id=ITEM-2, description=Stainless fasteners, amount=50.50", lines[2])
}

func TestPaymentsLogNoLineItems(t *testing.T) {
	log := NewPaymentsLog(t.TempDir(), NewAppender(), zap.NewNop())
	inv := &entity.Invoice{InvoiceID: "INV-2", PurchaseOrderNumber: "PO-9"}

	require.NoError(t, log.AppendApproval(inv, nil, time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)))

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t,
		"[INFO] [2024-06-02T08:30:00Z] Invoice INV-2 approved. Routing to Payment System.\n",
		string(data))
}
