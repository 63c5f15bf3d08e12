// Package document holds the data model shared by the parser, resolver and
// assembler: the flat section outline of a contract, the insertion jobs run
// against it, and the styled blocks produced for serialization.
package document

import (
	"regexp"
	"strconv"
	"strings"
)

// Section is a titled, numbered span of contract text. Hierarchy is implied
// by Number ("4.2.A" sits under "4.2"); it is never stored as a tree.
type Section struct {
	Number   string `json:"number"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Level    int    `json:"level"`    // count of dot components in Number
	Position int    `json:"position"` // equals the index in Document.Sections
}

// Document is a parsed contract. It is not modified after parsing.
type Document struct {
	Filename      string    `json:"filename"`
	Sections      []Section `json:"sections"`
	TotalSections int       `json:"totalSections"`
	DocumentType  string    `json:"documentType"`
	Style         Style     `json:"-"`
	ContentHash   string    `json:"-"`
}

// TextStyle is the font treatment for one class of text.
type TextStyle struct {
	Bold       bool   `json:"bold"`
	Underline  bool   `json:"underline"`
	FontSize   string `json:"fontSize"` // e.g. "12pt"
	FontFamily string `json:"fontFamily"`
}

// Style applies uniformly to every heading and every body in a document.
type Style struct {
	Heading   TextStyle `json:"headingStyle"`
	Body      TextStyle `json:"bodyStyle"`
	Spacing   string    `json:"spacing"`
	Numbering string    `json:"numberingStyle"`
}

// DefaultStyle is the common legal-document styling used when a source
// document carries no usable run formatting.
func DefaultStyle() Style {
	return Style{
		Heading: TextStyle{
			Bold:       true,
			Underline:  true,
			FontSize:   "12pt",
			FontFamily: "Times New Roman",
		},
		Body: TextStyle{
			FontSize:   "11pt",
			FontFamily: "Times New Roman",
		},
		Spacing:   "1.15",
		Numbering: "decimal",
	}
}

var pointSizePattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)pt$`)

// HalfPoints converts a declared size such as "11pt" into the half-point
// unit used by word-processing renderers. ok is false when size is not a
// point size.
func HalfPoints(size string) (n int, ok bool) {
	m := pointSizePattern.FindStringSubmatch(strings.TrimSpace(size))
	if m == nil {
		return 0, false
	}
	pt, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	// Halves round up.
	return int(pt*2 + 0.5), true
}
