package document

// JobStatus is the lifecycle state of an insertion job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobSuccess    JobStatus = "success"
	JobError      JobStatus = "error"
)

// Job asks for Clause to be placed according to a free-text Instruction.
// A job is created pending and is replaced wholesale by an enriched copy
// once resolved.
type Job struct {
	ID          string    `json:"id"`
	Clause      string    `json:"clause"`
	Instruction string    `json:"instruction"`
	Status      JobStatus `json:"status"`

	// InsertionPoint is 0..N: insert before the section at this index, N
	// appends. -1 when the instruction could not be resolved.
	InsertionPoint        *int       `json:"insertionPoint,omitempty"`
	ComputedSectionNumber string     `json:"computedSectionNumber,omitempty"`
	AppliedStyle          *TextStyle `json:"appliedStyle,omitempty"`
	Message               string     `json:"message,omitempty"`
}

// NewJob returns a pending job.
func NewJob(id, clause, instruction string) Job {
	return Job{
		ID:          id,
		Clause:      clause,
		Instruction: instruction,
		Status:      JobPending,
	}
}

// Point returns the resolved insertion point, or -1 if there is none.
func (j Job) Point() int {
	if j.InsertionPoint == nil {
		return -1
	}
	return *j.InsertionPoint
}

// Succeeded reports whether the job resolved successfully.
func (j Job) Succeeded() bool {
	return j.Status == JobSuccess
}

// Result is the outcome of processing one batch of jobs against a document.
// Blocks is nil unless every job succeeded.
type Result struct {
	Success bool     `json:"success"`
	Jobs    []Job    `json:"results"`
	Blocks  []Block  `json:"-"`
	Errors  []string `json:"errors,omitempty"`
}

// Assembled reports whether the batch produced document content.
func (r Result) Assembled() bool {
	return r.Blocks != nil
}
