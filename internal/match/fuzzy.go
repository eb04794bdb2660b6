package match

// Default confidence thresholds, calibrated to the LCS similarity in this
// package.
const (
	DefaultPOMinConfidence       = 0.7
	DefaultSupplierMinConfidence = 0.8
)

// Supplier match classifications.
const (
	MatchTypeExact         = "exact"
	MatchTypeFuzzy         = "fuzzy"
	MatchTypeNone          = "none"
	MatchTypeVendorIDExact = "vendor_id_exact"
	MatchTypeNameExact     = "name_exact"
	MatchTypeFuzzyMatch    = "fuzzy_match"
)

// POMatch is the outcome of matching an invoice PO number against the
// candidate PO numbers.
type POMatch struct {
	Matched    bool
	Index      int
	PONumber   string
	MatchType  string
	Confidence float64
	// BestScore records the highest score seen when nothing passed the
	// threshold.
	BestScore float64
}

// BestPOMatch returns the single best candidate whose score reaches
// minConfidence. Exact equality after token normalization scores 1.0.
// Ties are broken by first occurrence. Pass minConfidence <= 0 for the
// default.
func BestPOMatch(invoicePO string, candidates []string, minConfidence float64) POMatch {
	if minConfidence <= 0 {
		minConfidence = DefaultPOMinConfidence
	}
	result := POMatch{Index: -1, MatchType: MatchTypeNone}
	target := NormalizeToken(invoicePO)

	best := -1.0
	bestIdx := -1
	for i, cand := range candidates {
		var score float64
		if target != "" && NormalizeToken(cand) == target {
			score = 1.0
		} else {
			score = Similarity(invoicePO, cand)
		}
		if score > best {
			best = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return result
	}
	result.BestScore = best
	if best < minConfidence {
		return result
	}
	result.Matched = true
	result.Index = bestIdx
	result.PONumber = candidates[bestIdx]
	result.Confidence = best
	if best == 1.0 {
		result.MatchType = MatchTypeExact
	} else {
		result.MatchType = MatchTypeFuzzy
	}
	return result
}

// SupplierCandidate is one supplier record to score against.
type SupplierCandidate struct {
	Name     string
	VendorID string
}

// SupplierMatch is the outcome of matching invoice supplier details
// against candidate supplier records.
type SupplierMatch struct {
	Matched        bool
	Index          int
	MatchType      string
	Confidence     float64
	NameSimilarity float64
	VendorIDExact  bool
	BestScore      float64
}

// BestSupplierMatch scores candidates with 0.7*nameSimilarity +
// 0.3*vendorIDExact. An exact vendor id floors the combined score at 0.9.
// Classification: vendor_id_exact, name_exact (name similarity > 0.9),
// fuzzy_match (combined > 0.7), otherwise none. Pass minConfidence <= 0
// for the default.
func BestSupplierMatch(name, vendorID string, candidates []SupplierCandidate, minConfidence float64) SupplierMatch {
	if minConfidence <= 0 {
		minConfidence = DefaultSupplierMinConfidence
	}
	result := SupplierMatch{Index: -1, MatchType: MatchTypeNone}

	best := -1.0
	bestIdx := -1
	var bestNameSim float64
	var bestVendor bool
	for i, cand := range candidates {
		nameSim := Similarity(name, cand.Name)
		vendorExact := vendorID != "" && vendorID == cand.VendorID
		combined := 0.7 * nameSim
		if vendorExact {
			combined += 0.3
			if combined < 0.9 {
				combined = 0.9
			}
		}
		if combined > best {
			best = combined
			bestIdx = i
			bestNameSim = nameSim
			bestVendor = vendorExact
		}
	}
	if bestIdx < 0 {
		return result
	}
	result.BestScore = best
	result.NameSimilarity = bestNameSim
	result.VendorIDExact = bestVendor
	switch {
	case bestVendor:
		result.MatchType = MatchTypeVendorIDExact
	case bestNameSim > 0.9:
		result.MatchType = MatchTypeNameExact
	case best > 0.7:
		result.MatchType = MatchTypeFuzzyMatch
	}
	if best < minConfidence {
		return result
	}
	result.Matched = true
	result.Index = bestIdx
	result.Confidence = best
	return result
}
