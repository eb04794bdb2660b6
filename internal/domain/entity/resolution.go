package entity

// POMatchReport describes how the invoice's PO number was matched against
// the PO directory.
type POMatchReport struct {
	Matched    bool    `json:"matched"`
	PONumber   string  `json:"po_number,omitempty"`
	MatchType  string  `json:"match_type"` // exact, fuzzy, none
	Confidence float64 `json:"confidence"`
	// BestScore is the highest score observed when no candidate passed the
	// threshold, kept for diagnostics.
	BestScore float64 `json:"best_score,omitempty"`
}

// SupplierMatchReport describes the supplier match against the contract.
type SupplierMatchReport struct {
	Matched        bool    `json:"matched"`
	MatchType      string  `json:"match_type"` // vendor_id_exact, name_exact, fuzzy_match, none
	Confidence     float64 `json:"confidence"`
	NameSimilarity float64 `json:"name_similarity"`
	VendorIDExact  bool    `json:"vendor_id_exact"`
	BestScore      float64 `json:"best_score,omitempty"`
}

// Matching aggregates the per-stage match reports.
// OverallConfidence = 0.6*PO + 0.4*supplier.
type Matching struct {
	POMatch           POMatchReport       `json:"po_match"`
	SupplierMatch     SupplierMatchReport `json:"supplier_match"`
	OverallConfidence float64             `json:"overall_confidence"`
}

// Resolution is the resolved {invoice, po_item, contract} triple. The
// resolver exclusively produces it; validators only borrow it read-only.
// A nil pointer means the document was not found; it is rendered as
// "<not found>" only at the external boundary.
type Resolution struct {
	Invoice    *Invoice  `json:"invoice,omitempty"`
	POItem     *POItem   `json:"po_item,omitempty"`
	Contract   *Contract `json:"contract,omitempty"`
	Matching   Matching  `json:"matching_details"`
	SourcePath string    `json:"source_path,omitempty"`
}

// MissingParts lists which documents of the triple are absent, in
// invoice, po_item, contract order.
func (r *Resolution) MissingParts() []string {
	var missing []string
	if r.Invoice == nil {
		missing = append(missing, "invoice")
	}
	if r.POItem == nil {
		missing = append(missing, "po_item")
	}
	if r.Contract == nil {
		missing = append(missing, "contract")
	}
	return missing
}

// Complete reports whether all three documents were resolved.
func (r *Resolution) Complete() bool {
	return r.Invoice != nil && r.POItem != nil && r.Contract != nil
}
