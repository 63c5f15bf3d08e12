package pipeline

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/yellowpad/internal/config"
	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/outline"
	"github.com/dgallion1/yellowpad/internal/parser"
)

// ParseDocument extracts the text of data, recovers its section outline and
// settles its style: the detected one when the source carries run
// formatting, otherwise the configured fallback. detected reports which.
func ParseDocument(cfg config.Config, filename string, data []byte) (doc document.Document, detected bool, err error) {
	p, err := parser.ForFile(filename, parser.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		DetectStyle:          cfg.DetectStyle,
	})
	if err != nil {
		return document.Document{}, false, err
	}
	ext, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return document.Document{}, false, fmt.Errorf("failed to parse document: %w", err)
	}

	style := cfg.Style()
	if ext.Style != nil {
		style = *ext.Style
	}
	doc = outline.Parse(filename, ext.Text, style)
	doc.ContentHash = ContentHashHex(data)
	return doc, ext.Style != nil, nil
}
