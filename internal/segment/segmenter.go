package segment

import (
	"regexp"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
)

const (
	// minClauseChars filters heading-only and accidental fragments out of
	// the structural split.
	minClauseChars = 40

	// groupFlushChars is the accumulated length at which the fallback
	// sentence grouping flushes a clause.
	groupFlushChars = 250

	// titleScanLines is how many leading lines are checked for a heading.
	titleScanLines = 2

	// minTitleChars is the shortest line accepted as a heading.
	minTitleChars = 5
)

// headingPattern matches clause delimiters at line start: numbered headings
// ("1.", "2.3.") or uppercase heading lines, optionally ending in a colon.
var headingPattern = regexp.MustCompile(`(?m)^(?:\d+(?:\.\d+)*\.|[A-Z][A-Z\s]+):?\s`)

// numericMarker recognizes the numbered-heading form of a matched delimiter.
var numericMarker = regexp.MustCompile(`^\d+(?:\.\d+)*\.$`)

// Segmenter splits contract text into clause spans.
type Segmenter struct{}

// NewSegmenter creates a new segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits text into clause spans. Structural (heading-based) splitting
// is attempted first; if it yields nothing usable, sentences are grouped into
// length-bounded clauses. Empty input yields an empty result, never an error.
func (s *Segmenter) Segment(text string) []model.ClauseSpan {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	spans := s.structuralSplit(text)
	if len(spans) == 0 {
		spans = s.groupSentences(text)
	}

	for i := range spans {
		spans[i].ID = i + 1
		spans[i].Title = deriveTitle(spans[i].Text)
	}

	return spans
}

// structuralSplit cuts the text at heading delimiters and keeps fragments
// long enough to be real clauses. The numbering marker, when the delimiter
// was a numbered heading, is attached to the fragment it introduces.
func (s *Segmenter) structuralSplit(text string) []model.ClauseSpan {
	locs := headingPattern.FindAllStringIndex(text, -1)

	type fragment struct {
		text      string
		numbering string
	}

	var fragments []fragment
	if len(locs) == 0 {
		fragments = append(fragments, fragment{text: text})
	} else {
		fragments = append(fragments, fragment{text: text[:locs[0][0]]})
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			marker := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text[loc[0]:loc[1]]), ":"))
			numbering := ""
			if numericMarker.MatchString(marker) {
				numbering = marker
			}
			fragments = append(fragments, fragment{
				text:      text[loc[1]:end],
				numbering: numbering,
			})
		}
	}

	var spans []model.ClauseSpan
	for _, f := range fragments {
		chunk := strings.TrimSpace(f.text)
		if len(chunk) > minClauseChars {
			spans = append(spans, model.ClauseSpan{
				Text:      chunk,
				Numbering: f.numbering,
			})
		}
	}

	return spans
}

// groupSentences is the fallback for unstructured text: accumulate sentences
// and flush the buffer as one clause whenever it passes groupFlushChars.
func (s *Segmenter) groupSentences(text string) []model.ClauseSpan {
	var spans []model.ClauseSpan
	var buffer []string
	var buffered int

	flush := func() {
		joined := strings.TrimSpace(strings.Join(buffer, " "))
		if joined != "" {
			spans = append(spans, model.ClauseSpan{Text: joined})
		}
		buffer = buffer[:0]
		buffered = 0
	}

	for _, sentence := range SplitSentences(text) {
		buffer = append(buffer, sentence)
		buffered += len(sentence)
		if buffered > groupFlushChars {
			flush()
		}
	}
	if len(buffer) > 0 {
		flush()
	}

	return spans
}

// deriveTitle picks a short label for a clause: an uppercase or colon-bearing
// line among the first two lines, else the text up to the first sentence end.
func deriveTitle(text string) string {
	lines := strings.Split(text, "\n")
	limit := titleScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		if len(line) > minTitleChars && (isUpperLine(line) || strings.Contains(line, ":")) {
			return strings.TrimSpace(strings.ReplaceAll(line, ":", ""))
		}
	}

	return FirstSentence(text)
}

// isUpperLine reports whether a line is all-uppercase and contains at least
// one letter.
func isUpperLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
