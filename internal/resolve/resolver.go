// Package resolve turns an invoice filename into the resolved
// {invoice, po_item, contract} triple with a match-confidence report.
package resolve

import (
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/docstore"
	"github.com/apexfin/invoice-triage/internal/domain/entity"
	"github.com/apexfin/invoice-triage/internal/match"
)

// Overall confidence weights: PO match dominates the supplier match.
const (
	poWeight       = 0.6
	supplierWeight = 0.4
)

// Resolver looks up invoice -> PO item -> contract across the document
// store with exact-then-fuzzy matching.
type Resolver struct {
	store       *docstore.Store
	poMin       float64
	supplierMin float64
	logger      *zap.Logger
}

// New creates a Resolver over the given store using the default match
// thresholds.
func New(store *docstore.Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:       store,
		poMin:       match.DefaultPOMinConfidence,
		supplierMin: match.DefaultSupplierMinConfidence,
		logger:      logger,
	}
}

// NewWithThresholds creates a Resolver with explicit match thresholds.
func NewWithThresholds(store *docstore.Store, poMin, supplierMin float64, logger *zap.Logger) *Resolver {
	r := New(store, logger)
	if poMin > 0 {
		r.poMin = poMin
	}
	if supplierMin > 0 {
		r.supplierMin = supplierMin
	}
	return r
}

// Resolve locates the invoice named by filename (bare name, relative, or
// absolute path) and resolves its PO item and governing contract. A stage
// that finds nothing short-circuits later stages but never fails: missing
// documents are nil in the returned Resolution.
func (r *Resolver) Resolve(filename string) *entity.Resolution {
	res := &entity.Resolution{SourcePath: filename}
	res.Matching.POMatch.MatchType = match.MatchTypeNone
	res.Matching.SupplierMatch.MatchType = match.MatchTypeNone

	path, ok := r.store.FindFile(docstore.InvoiceDir, filename)
	if !ok {
		r.logger.Warn("Invoice document not found", zap.String("filename", filename))
		return res
	}
	inv, err := r.store.LoadInvoice(path)
	if err != nil {
		r.logger.Warn("Invoice document unreadable",
			zap.String("path", path),
			zap.Error(err))
		return res
	}
	res.Invoice = inv
	res.SourcePath = path

	po := r.matchPO(res, inv.PurchaseOrderNumber)
	if po == nil {
		return res
	}
	res.POItem = po

	contract := r.findContract(po.ContractID)
	if contract == nil {
		r.logger.Warn("No contract for PO item",
			zap.String("po_number", po.PONumber),
			zap.String("contract_id", po.ContractID))
		r.finishConfidence(res)
		return res
	}
	res.Contract = contract

	r.matchSupplier(res, inv, contract)
	r.finishConfidence(res)
	return res
}

// matchPO scores the invoice PO number against every PO item on file and
// records the match report.
func (r *Resolver) matchPO(res *entity.Resolution, invoicePO string) *entity.POItem {
	items := r.store.POItems()
	candidates := make([]string, len(items))
	for i, po := range items {
		candidates[i] = po.PONumber
	}

	m := match.BestPOMatch(invoicePO, candidates, r.poMin)
	res.Matching.POMatch = entity.POMatchReport{
		Matched:    m.Matched,
		PONumber:   m.PONumber,
		MatchType:  m.MatchType,
		Confidence: m.Confidence,
		BestScore:  m.BestScore,
	}
	if !m.Matched {
		r.logger.Warn("No PO match for invoice",
			zap.String("invoice_po", invoicePO),
			zap.Float64("best_score", m.BestScore))
		return nil
	}
	r.logger.Debug("PO matched",
		zap.String("po_number", m.PONumber),
		zap.String("match_type", m.MatchType),
		zap.Float64("confidence", m.Confidence))
	return items[m.Index]
}

// findContract looks up the contract whose normalized id equals the PO
// item's normalized contract id.
func (r *Resolver) findContract(contractID string) *entity.Contract {
	want := match.NormalizeToken(contractID)
	if want == "" {
		return nil
	}
	for _, c := range r.store.Contracts() {
		if match.NormalizeToken(c.ContractID) == want {
			return c
		}
	}
	return nil
}

// matchSupplier scores the invoice supplier against the contract's
// supplier party and records the match report.
func (r *Resolver) matchSupplier(res *entity.Resolution, inv *entity.Invoice, contract *entity.Contract) {
	m := match.BestSupplierMatch(
		inv.SupplierInfo.Name,
		inv.SupplierInfo.VendorID,
		[]match.SupplierCandidate{{
			Name:     contract.Parties.Supplier.Name,
			VendorID: contract.Parties.Supplier.VendorID,
		}},
		r.supplierMin,
	)
	res.Matching.SupplierMatch = entity.SupplierMatchReport{
		Matched:        m.Matched,
		MatchType:      m.MatchType,
		Confidence:     m.Confidence,
		NameSimilarity: m.NameSimilarity,
		VendorIDExact:  m.VendorIDExact,
		BestScore:      m.BestScore,
	}
}

func (r *Resolver) finishConfidence(res *entity.Resolution) {
	res.Matching.OverallConfidence = poWeight*res.Matching.POMatch.Confidence +
		supplierWeight*res.Matching.SupplierMatch.Confidence
}
