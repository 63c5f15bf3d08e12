package instruction

import (
	"fmt"

	"github.com/dgallion1/yellowpad/internal/document"
)

// ResolveJob resolves job against doc and returns the enriched copy. A job
// that cannot be resolved comes back with status error, insertion point -1
// and a remediation message; it is never an error return.
func ResolveJob(doc document.Document, job document.Job) document.Job {
	out := job
	res, err := Resolve(doc.Sections, job.Instruction)
	if err != nil {
		point := -1
		out.Status = document.JobError
		out.InsertionPoint = &point
		out.ComputedSectionNumber = ""
		out.AppliedStyle = nil
		out.Message = Remediation
		return out
	}

	point := res.InsertionPoint
	heading := doc.Style.Heading
	out.Status = document.JobSuccess
	out.InsertionPoint = &point
	out.ComputedSectionNumber = res.SectionNumber
	out.AppliedStyle = &heading
	out.Message = fmt.Sprintf("Successfully inserted as section %s at position %d", res.SectionNumber, point+1)
	return out
}

// ResolveAll resolves each job in order. A failed job does not stop the
// rest of the batch.
func ResolveAll(doc document.Document, jobs []document.Job) []document.Job {
	out := make([]document.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ResolveJob(doc, j))
	}
	return out
}
