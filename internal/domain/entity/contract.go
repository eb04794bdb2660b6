package entity

import "encoding/json"

// ContractParty names one side of a contract. VendorID is only set for
// supplier parties.
type ContractParty struct {
	Name     string `json:"name"`
	VendorID string `json:"vendor_id,omitempty"`
}

// ContractParties groups the supplier and client parties.
type ContractParties struct {
	Supplier ContractParty `json:"supplier"`
	Client   ContractParty `json:"client"`
}

// ContractMetadata carries the validity window.
// Invariant: EffectiveDate <= EndDate.
type ContractMetadata struct {
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date"`
}

// Contract is the master agreement governing one or more purchase orders.
// Sections are kept opaque; the pipeline never inspects them.
type Contract struct {
	ContractID       string            `json:"contract_id"`
	Parties          ContractParties   `json:"parties"`
	ContractMetadata ContractMetadata  `json:"contract_metadata"`
	PaymentTerms     string            `json:"payment_terms"`
	Currency         string            `json:"currency"`
	Sections         []json.RawMessage `json:"sections,omitempty"`
}
