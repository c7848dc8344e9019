package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Document is a loaded contract ready for analysis.
type Document struct {
	FullText string    `json:"full_text"`
	Segments []Segment `json:"segments"`
}

// Segment is one paragraph-level unit of the source document.
type Segment struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Load reads a contract file into a Document. Supported formats are plain
// text (.txt, .md) and HTML (.html, .htm). PDF and DOCX extraction happen
// upstream; this loader only consumes their text output.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = extractHTMLText(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse HTML: %w", err)
		}
	case ".txt", ".md", "":
		text = string(data)
	default:
		return nil, fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}

	text = removeRepeatedLines(text)

	return &Document{
		FullText: text,
		Segments: splitSegments(text),
	}, nil
}

// FromText wraps an already extracted text in a Document.
func FromText(text string) *Document {
	return &Document{
		FullText: text,
		Segments: splitSegments(text),
	}
}

// extractHTMLText pulls visible text from HTML, skipping scripts and styles.
// Block-level elements emit newlines so heading structure survives for the
// segmenter.
func extractHTMLText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(doc)
	return buf.String(), nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "li", "tr",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// removeRepeatedLines drops likely headers/footers: short-to-medium lines
// repeated more than five times across the document. The threshold is loose
// enough to keep legitimately repeated section titles.
func removeRepeatedLines(text string) string {
	lines := strings.Split(text, "\n")
	counts := make(map[string]int)

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) >= 6 && len(stripped) <= 80 {
			counts[stripped]++
		}
	}

	var kept []string
	for _, line := range lines {
		if counts[strings.TrimSpace(line)] <= 5 {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// splitSegments breaks text into paragraph segments on blank lines.
func splitSegments(text string) []Segment {
	var segments []Segment
	index := 1

	for _, part := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		segments = append(segments, Segment{Index: index, Text: trimmed})
		index++
	}

	return segments
}
