package classify

import "github.com/lawbrief/lawbrief/internal/model"

// clauseKeywords maps each category to the phrases counted by the keyword
// signal. Scores divide occurrence counts by the phrase count, so category
// scores stay comparable despite uneven list sizes.
var clauseKeywords = map[model.ClauseType][]string{
	model.ClauseTermination:          {"terminate", "termination", "end agreement", "expire", "dissolution", "cancel"},
	model.ClausePayment:              {"payment", "fee", "cost", "invoice", "billing", "remuneration", "compensation"},
	model.ClauseLiability:            {"liability", "liable", "damages", "indemnify", "indemnification", "harm"},
	model.ClauseConfidentiality:      {"confidential", "non-disclosure", "proprietary", "trade secret", "nda"},
	model.ClauseIntellectualProperty: {"intellectual property", "ip", "patent", "trademark", "copyright", "license"},
	model.ClauseForceMajeure:         {"force majeure", "act of god", "unforeseeable", "beyond control"},
	model.ClauseGoverningLaw:         {"governing law", "jurisdiction", "applicable law", "courts", "venue"},
	model.ClauseWarranty:             {"warranty", "guarantee", "warrants", "represents", "assurance"},
	model.ClauseDisputeResolution:    {"dispute", "arbitration", "mediation", "litigation", "resolution"},
	model.ClauseRenewal:              {"renewal", "renew", "extend", "automatic", "term"},
}

// templateClauses holds one canonical exemplar sentence per category,
// embedded once at startup for the semantic signal.
var templateClauses = map[model.ClauseType]string{
	model.ClauseTermination:          "This agreement may be terminated by either party with thirty days written notice.",
	model.ClausePayment:              "Payment shall be due within thirty days of invoice receipt.",
	model.ClauseLiability:            "Neither party shall be liable for indirect or consequential damages.",
	model.ClauseConfidentiality:      "All confidential information shall be kept strictly confidential.",
	model.ClauseIntellectualProperty: "All intellectual property rights remain with the original owner.",
	model.ClauseForceMajeure:         "Neither party shall be liable for delays caused by force majeure events.",
	model.ClauseGoverningLaw:         "This agreement shall be governed by the laws of the specified jurisdiction.",
	model.ClauseWarranty:             "The services are provided with no warranties express or implied.",
	model.ClauseDisputeResolution:    "Any disputes shall be resolved through binding arbitration.",
	model.ClauseRenewal:              "This agreement shall automatically renew for successive one-year terms.",
}
