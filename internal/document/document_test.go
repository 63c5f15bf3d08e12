package document

import "testing"

func TestHalfPoints(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"12pt", 24, true},
		{"11pt", 22, true},
		{"10.5pt", 21, true},
		{"10.25pt", 21, true},
		{"12PT", 24, true},
		{" 9pt ", 18, true},
		{"12px", 0, false},
		{"12", 0, false},
		{"", 0, false},
		{"pt", 0, false},
	}
	for _, tt := range tests {
		got, ok := HalfPoints(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("HalfPoints(%q): expected (%d, %v), got (%d, %v)", tt.in, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestStyledRun(t *testing.T) {
	s := DefaultStyle()
	r := StyledRun("1. Definitions", s.Heading)
	if !r.Bold || !r.Underline {
		t.Errorf("expected bold underlined heading run, got %+v", r)
	}
	if r.HalfPoints != 24 {
		t.Errorf("expected 24 half-points, got %d", r.HalfPoints)
	}
	if r.FontFamily != "Times New Roman" {
		t.Errorf("expected Times New Roman, got %q", r.FontFamily)
	}

	body := StyledRun("text", TextStyle{FontSize: "large"})
	if body.HalfPoints != 0 {
		t.Errorf("expected undeclared size for unparseable font size, got %d", body.HalfPoints)
	}
}

func TestBlockText(t *testing.T) {
	b := Block{Kind: BlockClause, Runs: []Run{{Text: "4.2."}, {Text: " Clause"}}}
	if got := b.Text(); got != "4.2. Clause" {
		t.Errorf("expected %q, got %q", "4.2. Clause", got)
	}
	if got := (Block{Kind: BlockSpacer}).Text(); got != "" {
		t.Errorf("expected empty spacer text, got %q", got)
	}
}

func TestJobPoint(t *testing.T) {
	j := NewJob("1", "c", "i")
	if j.Point() != -1 {
		t.Errorf("expected -1 for unresolved job, got %d", j.Point())
	}
	if j.Status != JobPending {
		t.Errorf("expected pending, got %q", j.Status)
	}
	p := 3
	j.InsertionPoint = &p
	if j.Point() != 3 {
		t.Errorf("expected 3, got %d", j.Point())
	}
}
