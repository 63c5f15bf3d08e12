// Package assembler interleaves resolved clauses with the original sections
// of a document and emits the ordered, styled block stream handed to the
// document serializer.
package assembler

import (
	"regexp"
	"strings"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/instruction"
)

// ownNumber matches a clause that already starts with "4.2." or "A.".
var ownNumber = regexp.MustCompile(`^(\d+(?:\.[\dA-Z]+)*|[A-Z])\.`)

// Build is the batch gate: it assembles doc with jobs only when there is at
// least one job and every job is placeable. Otherwise it returns nil, false
// and no partial document is produced.
func Build(doc document.Document, jobs []document.Job) ([]document.Block, bool) {
	if len(jobs) == 0 {
		return nil, false
	}
	for _, j := range jobs {
		if !Placeable(j, len(doc.Sections)) {
			return nil, false
		}
	}
	return Assemble(doc, jobs), true
}

// Placeable reports whether j succeeded with an insertion point inside a
// document of n sections (0..n).
func Placeable(j document.Job, n int) bool {
	p := j.Point()
	return j.Succeeded() && p >= 0 && p <= n
}

// Assemble emits, for each original section in order, the clauses resolved
// to land before it followed by the section's heading and body blocks. Clauses
// resolved to len(doc.Sections) follow the last section. Jobs that are not
// placeable are skipped; Build refuses such batches outright.
//
// The result holds 2 blocks per section plus 2 per placeable job.
func Assemble(doc document.Document, jobs []document.Job) []document.Block {
	n := len(doc.Sections)
	byPoint := make(map[int][]document.Job)
	placed := 0
	for _, j := range jobs {
		if !Placeable(j, n) {
			continue
		}
		byPoint[j.Point()] = append(byPoint[j.Point()], j)
		placed++
	}

	style := doc.Style
	blocks := make([]document.Block, 0, 2*n+2*placed)
	for i, sec := range doc.Sections {
		for _, j := range byPoint[i] {
			blocks = append(blocks, clauseBlocks(j, style)...)
		}
		blocks = append(blocks,
			document.Block{
				Kind: document.BlockHeading,
				Runs: []document.Run{document.StyledRun(sec.Number+". "+sec.Title, style.Heading)},
			},
			document.Block{
				Kind: document.BlockBody,
				Runs: []document.Run{document.StyledRun(sec.Content, style.Body)},
			},
		)
	}
	for _, j := range byPoint[n] {
		blocks = append(blocks, clauseBlocks(j, style)...)
	}
	return blocks
}

// HasOwnNumber reports whether clause already begins with a numbering token.
func HasOwnNumber(clause string) bool {
	return ownNumber.MatchString(strings.TrimSpace(clause))
}

// clauseBlocks renders one inserted clause and the spacer after it. A clause
// that carries its own number is emitted verbatim in body style; otherwise a
// heading fragment with the computed number precedes the text, which starts
// on the next line.
func clauseBlocks(j document.Job, style document.Style) []document.Block {
	text := strings.TrimSpace(j.Clause)

	var runs []document.Run
	if HasOwnNumber(text) {
		runs = []document.Run{document.StyledRun(text, style.Body)}
	} else {
		number := j.ComputedSectionNumber
		if number == "" {
			number, _ = instruction.ExplicitNumber(j.Instruction)
		}
		body := document.StyledRun(text, style.Body)
		body.Break = true
		if number != "" {
			body.Text = " " + text
			runs = append(runs, document.StyledRun(number+".", style.Heading))
		}
		runs = append(runs, body)
	}

	return []document.Block{
		{Kind: document.BlockClause, Runs: runs},
		{Kind: document.BlockSpacer},
	}
}
