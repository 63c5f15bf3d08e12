package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/fumiama/go-docx"
)

// headingLike matches paragraph text that the outline would treat as a
// section heading.
var headingLike = regexp.MustCompile(`^(\d+(?:\.\d+)*\.\s*\S|[A-Z]\.\s+\S)`)

// detectStyle derives the document style from the first run of the first
// heading-like paragraph and the first run of the first other paragraph.
// Attributes the runs do not declare keep their default values. It returns
// nil when neither kind of paragraph carries run properties.
func detectStyle(paras []*docx.Paragraph) *document.Style {
	var heading, body *docx.RunProperties
	for _, para := range paras {
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		props := firstRunProperties(para)
		if props == nil {
			continue
		}
		if headingLike.MatchString(text) {
			if heading == nil {
				heading = props
			}
		} else if body == nil {
			body = props
		}
		if heading != nil && body != nil {
			break
		}
	}
	if heading == nil && body == nil {
		return nil
	}

	style := document.DefaultStyle()
	if heading != nil {
		style.Heading = applyRunProperties(style.Heading, heading, true)
	}
	if body != nil {
		style.Body = applyRunProperties(style.Body, body, false)
	}
	return &style
}

func firstRunProperties(para *docx.Paragraph) *docx.RunProperties {
	for _, child := range para.Children {
		if run, ok := child.(*docx.Run); ok && run.RunProperties != nil {
			return run.RunProperties
		}
	}
	return nil
}

// applyRunProperties overlays declared run properties on base. Emphasis is
// taken as declared for headings; body text is never emphasized.
func applyRunProperties(base document.TextStyle, rp *docx.RunProperties, emphasis bool) document.TextStyle {
	out := base
	if emphasis {
		out.Bold = rp.Bold != nil
		out.Underline = rp.Underline != nil && rp.Underline.Val != "" && rp.Underline.Val != "none"
	}
	if rp.Size != nil {
		if size := sizeFromHalfPoints(rp.Size.Val); size != "" {
			out.FontSize = size
		}
	}
	if rp.Fonts != nil && rp.Fonts.ASCII != "" {
		out.FontFamily = rp.Fonts.ASCII
	}
	return out
}

// sizeFromHalfPoints turns a w:sz value ("24") into a point size ("12pt").
func sizeFromHalfPoints(val string) string {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		return ""
	}
	return strconv.FormatFloat(float64(n)/2, 'f', -1, 64) + "pt"
}
