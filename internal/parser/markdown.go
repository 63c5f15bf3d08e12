package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Ordered list items
// get their list numbers back, since contract headings written as "1. Term"
// parse as lists.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		lines = appendBlock(lines, n, src, "")
	}
	return &Extraction{Text: normalizeText(strings.Join(lines, "\n"))}, nil
}

// appendBlock appends the text lines of block n. prefix is written before
// the first line (a list number).
func appendBlock(lines []string, n ast.Node, src []byte, prefix string) []string {
	switch node := n.(type) {
	case *ast.List:
		num := node.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			marker := ""
			if node.IsOrdered() {
				marker = fmt.Sprintf("%d. ", num)
				num++
			}
			first := true
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if first {
					lines = appendBlock(lines, c, src, marker)
					first = false
					continue
				}
				lines = appendBlock(lines, c, src, "")
			}
		}
		return lines

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var buf bytes.Buffer
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			buf.Write(seg.Value(src))
		}
		return append(lines, strings.TrimRight(buf.String(), "\n"))

	case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
		var buf bytes.Buffer
		buf.WriteString(prefix)
		inlineText(n, src, &buf)
		if t := strings.TrimSpace(buf.String()); t != "" {
			lines = append(lines, t)
		}
		return lines
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		lines = appendBlock(lines, c, src, prefix)
		prefix = ""
	}
	return lines
}

func inlineText(n ast.Node, src []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			inlineText(c, src, buf)
		}
	}
}
