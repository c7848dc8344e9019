package segment

import (
	"regexp"
	"strings"
)

var (
	nonPrintableRe = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7E]`)
	excessBreaksRe = regexp.MustCompile(`\n{3,}`)
	bulletRe       = regexp.MustCompile(`[•·▪▫◦‣⁃]\s*`)
	numberingRe    = regexp.MustCompile(`(?m)^\s*((?:\d+\.){1,3}|\d+\)|[A-Za-z]\))\s+`)
	innerSpaceRe   = regexp.MustCompile(`[ \t]+`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
)

// CleanText normalizes whitespace, bullets, and numbering while preserving
// the double newlines that separate clauses.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	// Normalize bullets before the printable filter strips them.
	text = bulletRe.ReplaceAllString(text, "- ")
	text = nonPrintableRe.ReplaceAllString(text, " ")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = excessBreaksRe.ReplaceAllString(text, "\n\n")

	text = numberingRe.ReplaceAllString(text, "$1 ")
	text = innerSpaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// SplitSentences splits text into sentences on terminal punctuation,
// keeping the punctuation with its sentence. Newlines are treated as spaces.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Only split when followed by whitespace, to survive "1.2" and
			// common abbreviations mid-sentence.
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// FirstSentence returns the first sentence of text, or the first 100
// characters when no sentence boundary is found.
func FirstSentence(text string) string {
	parts := sentenceEndRe.Split(text, -1)
	if len(parts) > 0 {
		if s := strings.TrimSpace(parts[0]); s != "" {
			return s
		}
	}
	if len(text) > 100 {
		return text[:100]
	}
	return text
}

// clausePattern matches legal numbering markers ("1.", "2.3.", "4)", "A)",
// "Section 5") followed by spacing, used for clause-aware chunking.
var clausePattern = regexp.MustCompile(`(?i)((?:\d+\.){1,3}|\d+\)|[A-Z]\)|Section\s+\d+)[ \t]+`)

// ChunkText splits text into chunks of at most maxChars without breaking
// inside a numbered clause. A single clause longer than maxChars is split
// hard at the limit; everything else keeps clause boundaries intact.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var units []string
	for _, c := range numberedClauses(text) {
		for len(c) > maxChars {
			units = append(units, strings.TrimSpace(c[:maxChars]))
			c = c[maxChars:]
		}
		if s := strings.TrimSpace(c); s != "" {
			units = append(units, s)
		}
	}

	var chunks []string
	var current string

	for _, unit := range units {
		if current != "" && len(current)+len(unit)+2 > maxChars {
			chunks = append(chunks, current)
			current = unit
			continue
		}
		if current == "" {
			current = unit
		} else {
			current += "\n\n" + unit
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// numberedClauses splits text at legal numbering markers, keeping each
// marker with the text that follows it. Text with no markers is one clause.
func numberedClauses(text string) []string {
	locs := clausePattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var clauses []string
	if head := strings.TrimSpace(text[:locs[0][0]]); head != "" {
		clauses = append(clauses, head)
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if c := strings.TrimSpace(text[loc[0]:end]); c != "" {
			clauses = append(clauses, c)
		}
	}

	return clauses
}
