package pipeline

import (
	"github.com/dgallion1/yellowpad/internal/assembler"
	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/instruction"
)

// RunBatch resolves every job against doc, in order, and assembles the
// document only if all of them succeeded. Failed jobs stay in the result
// with their messages; one failure never stops the others from resolving.
func RunBatch(doc document.Document, jobs []document.Job) document.Result {
	resolved := instruction.ResolveAll(doc, jobs)

	var errs []string
	for _, j := range resolved {
		if !j.Succeeded() {
			msg := j.Message
			if msg == "" {
				msg = "Unknown error"
			}
			errs = append(errs, msg)
		}
	}

	blocks, ok := assembler.Build(doc, resolved)
	if !ok {
		blocks = nil
	}
	return document.Result{
		Success: len(errs) == 0,
		Jobs:    resolved,
		Blocks:  blocks,
		Errors:  errs,
	}
}
