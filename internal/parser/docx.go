package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. With DetectStyle set it also reads the
// run formatting of the first heading-like and first body paragraph.
type DOCXParser struct {
	DetectStyle bool
}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	// go-docx needs a ReaderAt+size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paras []*docx.Paragraph
	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paras = append(paras, para)
		if text := docxParagraphText(para); text != "" {
			lines = append(lines, text)
		}
	}

	out := &Extraction{Text: normalizeText(strings.Join(lines, "\n"))}
	if p.DetectStyle {
		out.Style = detectStyle(paras)
	}
	return out, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
