package pipeline

import (
	"testing"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/instruction"
	"github.com/dgallion1/yellowpad/internal/outline"
)

const contractText = `MASTER SERVICES AGREEMENT
1. Definitions
Capitalized terms have the meanings below.
2. Services
The provider will perform the services.
2.1. Scope
Scope of work.
3. Term
This agreement lasts one year.`

func contractDoc() document.Document {
	return outline.Parse("msa.txt", contractText, document.DefaultStyle())
}

func TestRunBatch_AllSucceed(t *testing.T) {
	doc := contractDoc()
	if doc.TotalSections != 4 {
		t.Fatalf("expected 4 sections, got %d", doc.TotalSections)
	}
	jobs := []document.Job{
		document.NewJob("a", "Fees are due monthly.", "after section 2.1"),
		document.NewJob("b", "Notices go to the addresses above.", "after section 3"),
	}

	res := RunBatch(doc, jobs)
	if !res.Success {
		t.Fatalf("expected success, got errors %v", res.Errors)
	}
	if !res.Assembled() {
		t.Fatal("expected assembled blocks")
	}
	if len(res.Blocks) != 2*4+2*2 {
		t.Errorf("expected %d blocks, got %d", 12, len(res.Blocks))
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
	if res.Jobs[0].Point() != 3 || res.Jobs[1].Point() != 4 {
		t.Errorf("expected points 3 and 4, got %d and %d", res.Jobs[0].Point(), res.Jobs[1].Point())
	}
}

func TestRunBatch_OneFailureGatesAssembly(t *testing.T) {
	doc := contractDoc()
	jobs := []document.Job{
		document.NewJob("a", "Good clause.", "before section 3"),
		document.NewJob("b", "Bad clause.", "put it somewhere"),
	}

	res := RunBatch(doc, jobs)
	if res.Success {
		t.Error("expected failure")
	}
	if res.Assembled() {
		t.Error("expected no assembled blocks")
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("expected 2 job results, got %d", len(res.Jobs))
	}
	if res.Jobs[0].Status != document.JobSuccess {
		t.Errorf("expected first job to still resolve, got %q", res.Jobs[0].Status)
	}
	if len(res.Errors) != 1 || res.Errors[0] != instruction.Remediation {
		t.Errorf("expected the remediation error, got %v", res.Errors)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	res := RunBatch(contractDoc(), nil)
	if !res.Success {
		t.Error("expected success with no failures")
	}
	if res.Assembled() {
		t.Error("expected nothing assembled for an empty batch")
	}
}
