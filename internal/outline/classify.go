package outline

import (
	"strings"

	"github.com/dgallion1/yellowpad/internal/document"
)

// Document types reported by Classify.
const (
	TypeNDA     = "Non-Disclosure Agreement"
	TypeService = "Service Agreement"
	TypeMutual  = "Mutual Agreement"
	TypeGeneric = "Legal Document"
)

// Classify gives a coarse document type from keywords in the text and the
// file name. The first matching rule wins.
func Classify(text, filename string) string {
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(filename)

	switch {
	case strings.Contains(lowerText, "non-disclosure"),
		strings.Contains(lowerText, "confidential"),
		strings.Contains(lowerName, "nda"):
		return TypeNDA
	case strings.Contains(lowerText, "subscription"),
		strings.Contains(lowerText, "service agreement"):
		return TypeService
	case strings.Contains(lowerText, "mutual") && strings.Contains(lowerText, "agreement"):
		return TypeMutual
	}
	return TypeGeneric
}

// Parse builds the parsed document for text extracted from filename.
func Parse(filename, text string, style document.Style) document.Document {
	sections := ParseSections(text)
	return document.Document{
		Filename:      filename,
		Sections:      sections,
		TotalSections: len(sections),
		DocumentType:  Classify(text, filename),
		Style:         style,
	}
}
