package segment

import (
	"strings"
	"testing"
)

func TestSegmenter_StructuralSplit(t *testing.T) {
	s := NewSegmenter()

	text := "1. TERMINATION\n" +
		"Either party may terminate this agreement upon thirty days written notice to the other party.\n" +
		"2. GOVERNING LAW\n" +
		"This agreement is governed by the laws of the State of Delaware without regard to conflict rules.\n"

	spans := s.Segment(text)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(spans))
	}

	// IDs are 1-based and contiguous
	for i, span := range spans {
		if span.ID != i+1 {
			t.Errorf("Expected clause ID %d, got %d", i+1, span.ID)
		}
	}

	if spans[0].Numbering != "1." {
		t.Errorf("Expected numbering '1.', got '%s'", spans[0].Numbering)
	}
	if spans[1].Numbering != "2." {
		t.Errorf("Expected numbering '2.', got '%s'", spans[1].Numbering)
	}

	if spans[0].Title != "TERMINATION" {
		t.Errorf("Expected title 'TERMINATION', got '%s'", spans[0].Title)
	}
	if spans[1].Title != "GOVERNING LAW" {
		t.Errorf("Expected title 'GOVERNING LAW', got '%s'", spans[1].Title)
	}

	if !strings.Contains(spans[0].Text, "terminate this agreement") {
		t.Errorf("First clause lost its body: %q", spans[0].Text)
	}
}

func TestSegmenter_SubNumbering(t *testing.T) {
	s := NewSegmenter()

	text := "3. PAYMENT\n" +
		"All invoices are payable within thirty days of receipt by the client organization.\n" +
		"3.1. Late payments accrue interest at one percent per month until the balance is settled in full.\n"

	spans := s.Segment(text)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(spans))
	}
	if spans[1].Numbering != "3.1." {
		t.Errorf("Expected numbering '3.1.', got '%s'", spans[1].Numbering)
	}
}

func TestSegmenter_SentenceGroupingFallback(t *testing.T) {
	s := NewSegmenter()

	// Too short for the structural split to keep anything.
	spans := s.Segment("Payment is due in thirty days.")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 clause from fallback, got %d", len(spans))
	}
	if spans[0].ID != 1 {
		t.Errorf("Expected ID 1, got %d", spans[0].ID)
	}
	if spans[0].Text != "Payment is due in thirty days." {
		t.Errorf("Fallback changed the text: %q", spans[0].Text)
	}
}

func TestSegmenter_EmptyInput(t *testing.T) {
	s := NewSegmenter()

	if spans := s.Segment(""); spans != nil {
		t.Errorf("Expected nil for empty input, got %v", spans)
	}
	if spans := s.Segment("  \n\t "); spans != nil {
		t.Errorf("Expected nil for whitespace input, got %v", spans)
	}
}

func TestSegmenter_NoTextLost(t *testing.T) {
	s := NewSegmenter()

	text := "1. CONFIDENTIALITY\n" +
		"Each party agrees to keep all proprietary information strictly confidential during the term.\n" +
		"2. WARRANTY\n" +
		"The supplier warrants that all deliverables conform to the agreed specifications at delivery.\n"

	spans := s.Segment(text)

	// Every clause body must survive segmentation intact.
	for _, body := range []string{
		"proprietary information strictly confidential",
		"deliverables conform to the agreed specifications",
	} {
		found := false
		for _, span := range spans {
			if strings.Contains(span.Text, body) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Clause body %q missing from all spans", body)
		}
	}
}
