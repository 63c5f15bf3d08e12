package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/yellowpad/internal/config"
	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/render"
)

// Orchestrator owns the uploaded documents and runs insertion batches
// against them.
type Orchestrator struct {
	store *Store
	stats *Stats
	log   *slog.Logger
	cfg   config.Config
	newID func() string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to enable TTL eviction.
func NewOrchestrator(cfg config.Config, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store: NewStore(cfg.DocumentTTL),
		stats: NewStats(time.Hour),
		log:   log,
		cfg:   cfg,
		newID: uuid.NewString,
	}
}

// Start launches the store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(o.cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if n := o.store.Cleanup(); n > 0 {
					o.log.Info("evicted expired documents", "count", n)
				}
			}
		}
	}()
}

// Stop ends the cleanup loop and waits for it to exit.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Upload extracts the text of data, recovers its section outline and stores
// the parsed document under a new ID.
func (o *Orchestrator) Upload(ctx context.Context, filename string, data []byte) (string, document.Document, error) {
	if err := ctx.Err(); err != nil {
		return "", document.Document{}, err
	}
	doc, detected, err := ParseDocument(o.cfg, filename, data)
	if err != nil {
		return "", document.Document{}, err
	}

	id := o.newID()
	o.store.PutDocument(id, doc)
	o.log.Info("document parsed",
		"document_id", id,
		"filename", filename,
		"sections", doc.TotalSections,
		"document_type", doc.DocumentType,
		"style_detected", detected,
	)
	return id, doc, nil
}

// Document returns the parsed document stored under id.
func (o *Orchestrator) Document(id string) (document.Document, error) {
	return o.store.Document(id)
}

// AddJob queues a pending insertion job against the document.
func (o *Orchestrator) AddJob(docID, clause, instruction string) (document.Job, error) {
	job := document.NewJob(o.newID(), clause, instruction)
	if err := o.store.AddJob(docID, job, o.cfg.MaxJobsPerDocument); err != nil {
		return document.Job{}, err
	}
	return job, nil
}

// Jobs returns the document's jobs in submission order.
func (o *Orchestrator) Jobs(docID string) ([]document.Job, error) {
	return o.store.Jobs(docID)
}

// Process resolves every queued job, stores the enriched jobs, and
// assembles the document when the whole batch succeeded.
func (o *Orchestrator) Process(ctx context.Context, docID string) (document.Result, error) {
	if err := ctx.Err(); err != nil {
		return document.Result{}, err
	}
	log := o.log.With("document_id", docID)

	var res document.Result
	start := time.Now()
	err := o.store.Update(docID, func(doc document.Document, jobs []document.Job) ([]document.Job, error) {
		if len(jobs) == 0 {
			return nil, ErrNoJobs
		}
		res = RunBatch(doc, jobs)
		return res.Jobs, nil
	})
	if err != nil {
		return document.Result{}, err
	}
	elapsed := time.Since(start)
	o.stats.Record(elapsed, len(res.Jobs), res.Assembled())

	for _, j := range res.Jobs {
		if !j.Succeeded() {
			log.Warn("job unresolved", "job_id", j.ID, "instruction", j.Instruction)
		}
	}
	log.Info("batch processed",
		"jobs", len(res.Jobs),
		"failed", len(res.Errors),
		"assembled", res.Assembled(),
		"blocks", len(res.Blocks),
		"duration_us", elapsed.Microseconds(),
	)
	return res, nil
}

// Download processes the batch again and serializes the assembled document.
// It returns ErrNotAssembled when any job fails to resolve.
func (o *Orchestrator) Download(ctx context.Context, docID string) ([]byte, string, error) {
	doc, err := o.store.Document(docID)
	if err != nil {
		return nil, "", err
	}
	res, err := o.Process(ctx, docID)
	if err != nil {
		return nil, "", err
	}
	if !res.Assembled() {
		return nil, "", ErrNotAssembled
	}
	data, err := render.DOCX(res.Blocks)
	if err != nil {
		return nil, "", err
	}
	return data, ProcessedFilename(doc.Filename), nil
}

// ProcessedFilename names the generated file; the output is always .docx.
func ProcessedFilename(filename string) string {
	return "processed_" + strings.TrimSuffix(filename, filepath.Ext(filename)) + ".docx"
}

// Stats returns processing statistics for the last hour.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}
