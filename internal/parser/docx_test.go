package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/render"
)

func TestDOCXParser_RoundTrip(t *testing.T) {
	style := document.DefaultStyle()
	blocks := []document.Block{
		{Kind: document.BlockHeading, Runs: []document.Run{document.StyledRun("1. Definitions", style.Heading)}},
		{Kind: document.BlockBody, Runs: []document.Run{document.StyledRun("The terms below apply.", style.Body)}},
		{Kind: document.BlockSpacer},
		{Kind: document.BlockClause, Runs: []document.Run{
			document.StyledRun("2.", style.Heading),
			document.StyledRun(" Added clause.", style.Body),
		}},
	}
	data, err := render.DOCX(blocks)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	p := &DOCXParser{}
	got, err := p.Parse(bytes.NewReader(data), "roundtrip.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1. Definitions\nThe terms below apply.\n2. Added clause."
	if got.Text != want {
		t.Errorf("expected %q, got %q", want, got.Text)
	}
	if got.Style != nil {
		t.Errorf("expected no style without detection, got %+v", got.Style)
	}
}

func TestDOCXParser_InvalidArchive(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}

func TestDetectStyle(t *testing.T) {
	f := docx.New().WithDefaultTheme()
	heading := f.AddParagraph()
	heading.AddText("1. Definitions").Bold().Size("28").Font("Arial", "Arial", "Arial", "")
	body := f.AddParagraph()
	body.AddText("The terms below apply.").Size("20").Font("Garamond", "Garamond", "Garamond", "")

	got := detectStyle([]*docx.Paragraph{heading, body})
	if got == nil {
		t.Fatal("expected a detected style")
	}
	if !got.Heading.Bold || got.Heading.Underline {
		t.Errorf("expected bold, not underlined heading, got %+v", got.Heading)
	}
	if got.Heading.FontSize != "14pt" || got.Heading.FontFamily != "Arial" {
		t.Errorf("unexpected heading style: %+v", got.Heading)
	}
	if got.Body.FontSize != "10pt" || got.Body.FontFamily != "Garamond" || got.Body.Bold {
		t.Errorf("unexpected body style: %+v", got.Body)
	}
	if got.Spacing != "1.15" {
		t.Errorf("expected default spacing, got %q", got.Spacing)
	}
}

func TestSizeFromHalfPoints(t *testing.T) {
	tests := map[string]string{
		"24":  "12pt",
		"21":  "10.5pt",
		" 22": "11pt",
		"0":   "",
		"abc": "",
		"":    "",
	}
	for in, want := range tests {
		if got := sizeFromHalfPoints(in); got != want {
			t.Errorf("sizeFromHalfPoints(%q): expected %q, got %q", in, want, got)
		}
	}
}
