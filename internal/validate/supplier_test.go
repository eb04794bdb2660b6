package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSupplierPass(t *testing.T) {
	result := CheckSupplier(cleanInvoice(), cleanContract())
	assert.Equal(t, StatusPass, result.Status)
	assert.Empty(t, result.Exceptions)
}

func TestCheckSupplierNameMismatch(t *testing.T) {
	inv := cleanInvoice()
	inv.SupplierInfo.Name = "Acme Mfg"
	result := CheckSupplier(inv, cleanContract())

	require.Equal(t, StatusFail, result.Status)
	require.Contains(t, kinds(result), "supplier_name_mismatch")

	mismatch := result.Exceptions[0].(FieldMismatch)
	assert.Equal(t, "Acme Mfg", mismatch.InvoiceValue)
	assert.Equal(t, "Acme Manufacturing", mismatch.ExpectedValue)
	assert.Equal(t, "exact_match", mismatch.Method)
	assert.Equal(t, "100% exact match required", mismatch.Threshold)
}

func TestCheckSupplierWhitespaceVisible(t *testing.T) {
	// Double space inside the invoice's supplier name.
	inv := cleanInvoice()
	inv.SupplierInfo.Name = "Acme  Manufacturing"
	result := CheckSupplier(inv, cleanContract())

	require.Equal(t, StatusFail, result.Status)
	mismatch := result.Exceptions[0].(FieldMismatch)
	assert.Contains(t, mismatch.DiffDescription, "position 5")
	assert.Contains(t, mismatch.DiffDescription, "[SPACE][SPACE]")
	assert.Contains(t, mismatch.DiffDescription, "2 space(s)")
	assert.Contains(t, mismatch.DiffDescription, "1 space(s)")
}

func TestCheckSupplierVendorAndBillTo(t *testing.T) {
	inv := cleanInvoice()
	inv.SupplierInfo.VendorID = "V-999"
	inv.BillToInfo.Name = "Globex Corporation"
	result := CheckSupplier(inv, cleanContract())

	require.Equal(t, StatusFail, result.Status)
	got := kinds(result)
	assert.Contains(t, got, "vendor_id_mismatch")
	assert.Contains(t, got, "bill_to_name_mismatch")
	assert.NotContains(t, got, "supplier_name_mismatch")
}
