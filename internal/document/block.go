package document

// BlockKind groups content blocks for the serializer.
type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockBody    BlockKind = "body"
	BlockClause  BlockKind = "clause"
	BlockSpacer  BlockKind = "spacer"
)

// Block is one paragraph of output: an ordered list of styled runs.
type Block struct {
	Kind BlockKind `json:"kind"`
	Runs []Run     `json:"runs,omitempty"`
}

// Run is a span of text with a single set of font attributes.
// HalfPoints is 0 when no size was declared. Break starts the run on a new
// line within the same paragraph.
type Run struct {
	Text       string `json:"text"`
	Break      bool   `json:"break,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	HalfPoints int    `json:"size,omitempty"`
}

// StyledRun builds a run carrying the attributes of s.
func StyledRun(text string, s TextStyle) Run {
	size, _ := HalfPoints(s.FontSize)
	return Run{
		Text:       text,
		Bold:       s.Bold,
		Underline:  s.Underline,
		FontFamily: s.FontFamily,
		HalfPoints: size,
	}
}

// Text concatenates the text of every run in the block.
func (b Block) Text() string {
	var s string
	for _, r := range b.Runs {
		s += r.Text
	}
	return s
}
