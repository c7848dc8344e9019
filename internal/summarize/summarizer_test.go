package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lawbrief/lawbrief/internal/model"
)

// mockEmbedder returns canned vectors by exact text and an all-zero default.
type mockEmbedder struct {
	vectors map[string][]float32
	dim     int
	err     error
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = make([]float32, m.dim)
		}
	}
	return out, nil
}

// mockCondenser returns a fixed summary or a fixed error, counting calls.
type mockCondenser struct {
	response string
	err      error
	calls    int
}

func (m *mockCondenser) Condense(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// tenSentences builds a document whose sentences s2, s5, and s9 share one
// embedding (a tight similarity cluster) while every other sentence is
// orthogonal to everything. Graph centrality must pick the cluster.
func tenSentences(m *mockEmbedder) (string, []string) {
	cluster := []float32{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	var sentences []string
	for i := 1; i <= 10; i++ {
		sentences = append(sentences, fmt.Sprintf("This is contract sentence number %d with filler words", i))
	}

	for i, s := range sentences {
		switch i {
		case 1, 4, 8: // s2, s5, s9
			m.vectors[s] = cluster
		default:
			v := make([]float32, 12)
			v[i+2] = 1
			m.vectors[s] = v
		}
	}

	return strings.Join(sentences, ". ") + ".", sentences
}

func TestSummarize_ExtractivePicksCentralSentences(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	text, sentences := tenSentences(m)

	s := NewSummarizer(m, nil)
	summary, warnings := s.Summarize(context.Background(), text, ModeExtractive, nil)

	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}

	want := []string{sentences[1], sentences[4], sentences[8]}
	for _, sent := range want {
		if !strings.Contains(summary.ShortSummary, sent) {
			t.Errorf("Short summary missing central sentence %q", sent)
		}
	}

	// Selected sentences appear in original document order.
	prev := -1
	for _, sent := range want {
		idx := strings.Index(summary.ShortSummary, sent)
		if idx < prev {
			t.Errorf("Sentence %q out of document order in summary", sent)
		}
		prev = idx
	}

	if summary.LongSummary == "" {
		t.Error("Expected a long summary")
	}
}

func TestSummarize_AbstractiveSuccess(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	text, _ := tenSentences(m)
	c := &mockCondenser{response: "Condensed contract summary."}

	s := NewSummarizer(m, c)
	summary, warnings := s.Summarize(context.Background(), text, ModeAbstractive, nil)

	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if summary.ShortSummary != "Condensed contract summary." {
		t.Errorf("Expected condenser output, got %q", summary.ShortSummary)
	}
	if c.calls != 2 {
		t.Errorf("Expected 2 condenser calls (short and long), got %d", c.calls)
	}
}

func TestSummarize_HybridFallsBackToExtractive(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	text, sentences := tenSentences(m)
	c := &mockCondenser{err: errors.New("model unavailable")}

	s := NewSummarizer(m, c)
	summary, warnings := s.Summarize(context.Background(), text, ModeHybrid, nil)

	if summary.ShortSummary == "" {
		t.Fatal("Expected extractive fallback to produce a summary")
	}
	if !strings.Contains(summary.ShortSummary, sentences[1]) {
		t.Errorf("Fallback summary missing central sentence, got %q", summary.ShortSummary)
	}

	foundFallback := false
	for _, w := range warnings {
		if strings.Contains(w, "falling back") {
			foundFallback = true
		}
	}
	if !foundFallback {
		t.Errorf("Expected a fallback warning, got %v", warnings)
	}
}

func TestSummarize_ShortTextUnchanged(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	c := &mockCondenser{response: "should not be used"}

	s := NewSummarizer(m, c)
	summary, warnings := s.Summarize(context.Background(), "Short agreement text.", ModeHybrid, nil)

	if summary.ShortSummary != "Short agreement text." {
		t.Errorf("Expected text unchanged, got %q", summary.ShortSummary)
	}
	if summary.LongSummary != "Short agreement text." {
		t.Errorf("Expected text unchanged, got %q", summary.LongSummary)
	}
	if c.calls != 0 {
		t.Errorf("Expected no condenser calls for short text, got %d", c.calls)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestSummarize_PerClause(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	c := &mockCondenser{response: "Clause condensed."}

	longClause := strings.Repeat("the supplier shall deliver goods promptly ", 5)
	clauses := []model.ClassifiedClause{
		{
			ClauseSpan: model.ClauseSpan{ID: 1, Text: longClause},
			Type:       model.ClausePayment,
		},
		{
			ClauseSpan: model.ClauseSpan{ID: 2, Text: "Brief clause."},
			Type:       model.ClauseWarranty,
		},
	}

	s := NewSummarizer(m, c)
	summary, _ := s.Summarize(context.Background(), "Tiny text.", ModeHybrid, clauses)

	if len(summary.PerClauseSummaries) != 2 {
		t.Fatalf("Expected 2 clause summaries, got %d", len(summary.PerClauseSummaries))
	}

	if summary.PerClauseSummaries[0].Summary != "Clause condensed." {
		t.Errorf("Expected condensed clause, got %q", summary.PerClauseSummaries[0].Summary)
	}
	if summary.PerClauseSummaries[0].ClauseType != model.ClausePayment {
		t.Errorf("Expected clause type carried through, got %s", summary.PerClauseSummaries[0].ClauseType)
	}

	// Clauses under the minimum word count pass through untouched.
	if summary.PerClauseSummaries[1].Summary != "Brief clause." {
		t.Errorf("Expected short clause unchanged, got %q", summary.PerClauseSummaries[1].Summary)
	}
}

func TestSummarize_ClauseCondensationFallsBack(t *testing.T) {
	m := &mockEmbedder{vectors: make(map[string][]float32), dim: 12}
	c := &mockCondenser{err: errors.New("model unavailable")}

	longClause := "The supplier shall deliver all goods promptly to the designated warehouse. " +
		"Deliveries happen on business days only and require a signature from the receiving manager."
	clauses := []model.ClassifiedClause{
		{ClauseSpan: model.ClauseSpan{ID: 1, Text: longClause}, Type: model.ClauseUnclassified},
	}

	s := NewSummarizer(m, c)
	summary, warnings := s.Summarize(context.Background(), "Tiny text.", ModeExtractive, clauses)

	got := summary.PerClauseSummaries[0].Summary
	if !strings.HasPrefix(got, "The supplier shall deliver all goods promptly") {
		t.Errorf("Expected first-sentence fallback, got %q", got)
	}

	foundWarning := false
	for _, w := range warnings {
		if strings.Contains(w, "clause 1") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("Expected a clause fallback warning, got %v", warnings)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"abstractive", ModeAbstractive, false},
		{"EXTRACTIVE", ModeExtractive, false},
		{"hybrid", ModeHybrid, false},
		{"", ModeHybrid, false},
		{"bogus", Mode(""), true},
	}

	for _, c := range cases {
		got, err := ParseMode(c.in)
		if c.wantErr != (err != nil) {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("ParseMode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExecutiveSummary(t *testing.T) {
	clauses := []model.ClassifiedClause{
		{ClauseSpan: model.ClauseSpan{ID: 1}, Type: model.ClauseTermination},
		{ClauseSpan: model.ClauseSpan{ID: 2}, Type: model.ClauseLiability},
		{ClauseSpan: model.ClauseSpan{ID: 3}, Type: model.ClauseLiability},
	}
	riskSummary := model.ContractRiskSummary{
		ContractRiskLevel: model.RiskHigh,
		HighRiskCount:     1,
		MediumRiskCount:   1,
		LowRiskCount:      1,
		TopRisky: []model.ClauseRisk{
			{ClauseID: 2, RiskScore: 0.75, MatchedTerms: []string{"indemnif(y|ication|ies)?", "hold harmless"}},
		},
	}

	got := ExecutiveSummary(clauses, riskSummary)

	for _, want := range []string{
		"3 clauses",
		"2 main categories",
		"Overall risk level: High",
		"indemnification",
		"hold harmless",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Executive summary missing %q: %s", want, got)
		}
	}
}
