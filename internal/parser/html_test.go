package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_BlockElements(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p{}</style></head>
<body>
<h1>Agreement</h1>
<p>1. Definitions</p>
<p>The terms <b>below</b> apply.</p>
<script>var x = 1;</script>
<p>2. Services<br>Work to be done.</p>
</body></html>`

	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "msa.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Agreement\n1. Definitions\nThe terms below apply.\n2. Services\nWork to be done."
	if got.Text != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got.Text)
	}
}

func TestHTMLParser_OrderedList(t *testing.T) {
	input := `<body><ol start="4"><li>Fees</li><li></li><li>Taxes</li></ol><ol><li>Notices</li></ol></body>`
	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "list.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "4. Fees\n6. Taxes\n1. Notices"; got.Text != want {
		t.Errorf("expected %q, got %q", want, got.Text)
	}
}

func TestHTMLParser_Fragment(t *testing.T) {
	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(`<p>A. Scope</p><p>Body text</p>`), "frag.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "A. Scope\nBody text"; got.Text != want {
		t.Errorf("expected %q, got %q", want, got.Text)
	}
}
