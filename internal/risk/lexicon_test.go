package risk

import "testing"

func TestLexicon_PatternsMatch(t *testing.T) {
	cases := []struct {
		text string
		term string
	}{
		{"Client shall INDEMNIFY the vendor.", "indemnif(y|ication|ies)?"},
		{"Fees are non refundable.", "non[- ]refundable"},
		{"Fees are non-refundable.", "non[- ]refundable"},
		{"Payment of attorney's fees is required.", "attorney('s|s)? fees?"},
		{"Subject to liquidated damages of $500.", "liquidated damages"},
		{"Any penalties apply immediately.", "penalt(y|ies)"},
	}

	for _, c := range cases {
		found := false
		for _, e := range riskLexicon {
			if e.Term == c.term && e.re.MatchString(c.text) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Pattern %q did not match %q", c.term, c.text)
		}
	}
}

func TestLexicon_WordBoundaries(t *testing.T) {
	// Lexicon patterns match whole words only.
	for _, e := range riskLexicon {
		if e.Term == "breach" {
			if !e.re.MatchString("in the event of breach") {
				t.Error("Expected 'breach' to match as a whole word")
			}
			if e.re.MatchString("unbreachable") {
				t.Error("'breach' inside another word must not match")
			}
		}
	}
}

func TestPhraseForTerm(t *testing.T) {
	if got := PhraseForTerm("indemnif(y|ication|ies)?"); got != "indemnification" {
		t.Errorf("Expected 'indemnification', got %q", got)
	}
	if got := PhraseForTerm("hold harmless"); got != "hold harmless" {
		t.Errorf("Expected 'hold harmless', got %q", got)
	}
	if got := PhraseForTerm("unknown term"); got != "unknown term" {
		t.Errorf("Unknown terms pass through, got %q", got)
	}
}
