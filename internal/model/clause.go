package model

import "strings"

// ClauseType is the closed set of clause categories the classifier can assign.
// Values use snake_case so they survive JSON round-trips unambiguously;
// Display produces the human-readable form used in reports.
type ClauseType string

const (
	ClauseTermination          ClauseType = "termination"
	ClausePayment              ClauseType = "payment"
	ClauseLiability            ClauseType = "liability"
	ClauseConfidentiality      ClauseType = "confidentiality"
	ClauseIntellectualProperty ClauseType = "intellectual_property"
	ClauseForceMajeure         ClauseType = "force_majeure"
	ClauseGoverningLaw         ClauseType = "governing_law"
	ClauseWarranty             ClauseType = "warranty"
	ClauseDisputeResolution    ClauseType = "dispute_resolution"
	ClauseRenewal              ClauseType = "renewal"
	ClauseUnclassified         ClauseType = "unclassified"
)

// ClauseTypes lists every classifiable category (excluding unclassified),
// in the order the classifier scores them.
var ClauseTypes = []ClauseType{
	ClauseTermination,
	ClausePayment,
	ClauseLiability,
	ClauseConfidentiality,
	ClauseIntellectualProperty,
	ClauseForceMajeure,
	ClauseGoverningLaw,
	ClauseWarranty,
	ClauseDisputeResolution,
	ClauseRenewal,
}

// Display returns the human-readable category name ("intellectual_property"
// becomes "Intellectual Property").
func (t ClauseType) Display() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ClauseSpan is one contiguous run of source text treated as a single clause.
// Spans are created once by the segmenter and never mutated; downstream
// components annotate them by producing sibling records keyed by ID.
type ClauseSpan struct {
	ID        int    `json:"id"`                  // 1-based, ascending, contiguous within a document
	Text      string `json:"text"`                // trimmed, never empty
	Title     string `json:"title,omitempty"`     // heading line or first sentence
	Numbering string `json:"numbering,omitempty"` // structural marker like "1.2." when the split found one
}

// ClassifiedClause is a ClauseSpan plus its assigned category and confidence.
// Confidence is not clamped to [0,1]: the keyword score can exceed 1 for
// highly repetitive text, and that raw value is preserved.
type ClassifiedClause struct {
	ClauseSpan
	Type       ClauseType `json:"type"`
	Confidence float64    `json:"confidence"`
	Entities   []Entity   `json:"entities,omitempty"`
}

// EntityLabel is the allow-listed set of entity tags kept by the extractor.
type EntityLabel string

const (
	EntityOrganization EntityLabel = "organization"
	EntityPerson       EntityLabel = "person"
	EntityDate         EntityLabel = "date"
	EntityMoney        EntityLabel = "money"
	EntityLocation     EntityLabel = "location"
	EntityTime         EntityLabel = "time"
	EntityPercent      EntityLabel = "percent"
	EntityQuantity     EntityLabel = "quantity"
	EntityLaw          EntityLabel = "law"
)

// Entity is a typed span within one clause. Offsets are clause-relative.
type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}
