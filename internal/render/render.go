// Package render serializes assembled blocks into a .docx file.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/fumiama/go-docx"
)

// ContentType is the MIME type of the files WriteDOCX produces.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WriteDOCX writes one paragraph per block and one text run per block run.
// A run with Break set is preceded by a line break. Spacer blocks become
// empty paragraphs.
func WriteDOCX(w io.Writer, blocks []document.Block) (int64, error) {
	f := docx.New().WithDefaultTheme()
	for _, b := range blocks {
		para := f.AddParagraph()
		for _, r := range b.Runs {
			text := r.Text
			if r.Break {
				// AddText turns each "\n" into a <w:br/>.
				text = "\n" + text
			}
			applyRun(para.AddText(text), r)
		}
	}
	n, err := f.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write docx: %w", err)
	}
	return n, nil
}

// DOCX returns the serialized document as bytes.
func DOCX(blocks []document.Block) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteDOCX(&buf, blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func applyRun(run *docx.Run, r document.Run) {
	if r.Bold {
		run.Bold()
	}
	if r.Underline {
		run.Underline("single")
	}
	if r.FontFamily != "" {
		run.Font(r.FontFamily, r.FontFamily, r.FontFamily, "")
	}
	if r.HalfPoints > 0 {
		run.Size(strconv.Itoa(r.HalfPoints))
	}
}
