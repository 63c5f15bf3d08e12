package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/yellowpad/internal/config"
	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/parser"
)

func testConfig() config.Config {
	def := document.DefaultStyle()
	return config.Config{
		Port:               "8090",
		LogLevel:           "info",
		MaxUploadBytes:     1 << 20,
		DocumentTTL:        time.Hour,
		CleanupInterval:    time.Minute,
		MaxJobsPerDocument: 5,
		HeadingFont:        def.Heading.FontFamily,
		HeadingSize:        def.Heading.FontSize,
		HeadingBold:        true,
		HeadingUnderline:   true,
		BodyFont:           def.Body.FontFamily,
		BodySize:           def.Body.FontSize,
		BodySpacing:        def.Spacing,
	}
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o := NewOrchestrator(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	n := 0
	o.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return o
}

func TestOrchestrator_Upload(t *testing.T) {
	o := newTestOrchestrator(t)
	id, doc, err := o.Upload(context.Background(), "msa.txt", []byte(contractText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "id-1" {
		t.Errorf("expected id %q, got %q", "id-1", id)
	}
	if doc.TotalSections != 4 {
		t.Errorf("expected 4 sections, got %d", doc.TotalSections)
	}
	if doc.DocumentType != "Legal Document" {
		t.Errorf("expected generic type, got %q", doc.DocumentType)
	}
	if doc.ContentHash != ContentHashHex([]byte(contractText)) {
		t.Errorf("expected content hash to be set")
	}
	if doc.Style.Heading.FontFamily != "Times New Roman" {
		t.Errorf("expected configured fallback style, got %+v", doc.Style.Heading)
	}

	stored, err := o.Document(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Filename != "msa.txt" {
		t.Errorf("expected stored filename %q, got %q", "msa.txt", stored.Filename)
	}
}

func TestOrchestrator_UploadUnsupported(t *testing.T) {
	o := newTestOrchestrator(t)
	if _, _, err := o.Upload(context.Background(), "sheet.xlsx", []byte("x")); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestOrchestrator_UploadCanceled(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := o.Upload(ctx, "msa.txt", []byte(contractText)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_ProcessAndDownload(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()
	id, _, err := o.Upload(ctx, "msa.txt", []byte(contractText))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	job, err := o.AddJob(id, "Fees are due monthly.", "as section 2.2 after section 2.1")
	if err != nil {
		t.Fatalf("add job: %v", err)
	}
	if job.Status != document.JobPending {
		t.Errorf("expected pending job, got %q", job.Status)
	}

	res, err := o.Process(ctx, id)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !res.Success || !res.Assembled() {
		t.Fatalf("expected assembled success, got %+v", res)
	}
	jobs, _ := o.Jobs(id)
	if jobs[0].Status != document.JobSuccess || jobs[0].ComputedSectionNumber != "2.2" {
		t.Errorf("expected stored job enriched, got %+v", jobs[0])
	}

	data, filename, err := o.Download(ctx, id)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filename != "processed_msa.docx" {
		t.Errorf("expected filename %q, got %q", "processed_msa.docx", filename)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("expected a zip container")
	}

	ext, err := (&parser.DOCXParser{}).Parse(bytes.NewReader(data), filename)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	want := "2.1. Scope\nScope of work.\n2.2. Fees are due monthly.\n3. Term"
	if !strings.Contains(ext.Text, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, ext.Text)
	}

	if snap := o.Stats(); snap.Batches != 2 || snap.Assembled != 2 {
		t.Errorf("expected 2 assembled batches, got %+v", snap)
	}
}

func TestOrchestrator_DownloadGated(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()
	id, _, _ := o.Upload(ctx, "msa.txt", []byte(contractText))
	_, _ = o.AddJob(id, "Good.", "after section 1")
	_, _ = o.AddJob(id, "Bad.", "wherever")

	res, err := o.Process(ctx, id)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Success || res.Assembled() {
		t.Errorf("expected gated batch, got %+v", res)
	}
	if _, _, err := o.Download(ctx, id); !errors.Is(err, ErrNotAssembled) {
		t.Errorf("expected ErrNotAssembled, got %v", err)
	}
}

func TestOrchestrator_ProcessErrors(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()
	if _, err := o.Process(ctx, "missing"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}

	id, _, _ := o.Upload(ctx, "msa.txt", []byte(contractText))
	if _, err := o.Process(ctx, id); !errors.Is(err, ErrNoJobs) {
		t.Errorf("expected ErrNoJobs, got %v", err)
	}
	if _, _, err := o.Download(ctx, id); !errors.Is(err, ErrNoJobs) {
		t.Errorf("expected ErrNoJobs from download, got %v", err)
	}
}

func TestOrchestrator_JobLimit(t *testing.T) {
	o := newTestOrchestrator(t)
	id, _, _ := o.Upload(context.Background(), "msa.txt", []byte(contractText))
	for i := 0; i < 5; i++ {
		if _, err := o.AddJob(id, "c", "after section 1"); err != nil {
			t.Fatalf("job %d: unexpected error: %v", i, err)
		}
	}
	if _, err := o.AddJob(id, "c", "after section 1"); !errors.Is(err, ErrTooManyJobs) {
		t.Errorf("expected ErrTooManyJobs, got %v", err)
	}
}

func TestOrchestrator_StartStop(t *testing.T) {
	o := newTestOrchestrator(t)
	o.Start(context.Background())
	o.Stop()
}

func TestProcessedFilename(t *testing.T) {
	tests := map[string]string{
		"msa.docx":     "processed_msa.docx",
		"contract.pdf": "processed_contract.docx",
		"notes.v2.txt": "processed_notes.v2.docx",
		"noext":        "processed_noext.docx",
	}
	for in, want := range tests {
		if got := ProcessedFilename(in); got != want {
			t.Errorf("ProcessedFilename(%q): expected %q, got %q", in, want, got)
		}
	}
}
