package pipeline

import (
	"math"
	"testing"
	"time"
)

func TestStats_Snapshot(t *testing.T) {
	s := NewStats(time.Hour)
	s.Record(100*time.Microsecond, 2, true)
	s.Record(300*time.Microsecond, 1, false)
	s.Record(200*time.Microsecond, 3, true)

	snap := s.Snapshot()
	if snap.Batches != 3 {
		t.Errorf("expected 3 batches, got %d", snap.Batches)
	}
	if snap.Assembled != 2 || snap.Gated != 1 {
		t.Errorf("expected 2 assembled and 1 gated, got %d and %d", snap.Assembled, snap.Gated)
	}
	if snap.Jobs != 6 {
		t.Errorf("expected 6 jobs, got %d", snap.Jobs)
	}
	if snap.MinUs != 100 || snap.MaxUs != 300 {
		t.Errorf("expected min 100 max 300, got %d and %d", snap.MinUs, snap.MaxUs)
	}
	if snap.AvgUs != 200 {
		t.Errorf("expected avg 200, got %f", snap.AvgUs)
	}
	if snap.P50Us != 200 {
		t.Errorf("expected p50 200, got %f", snap.P50Us)
	}
	if math.Abs(snap.P95Us-290) > 1e-9 {
		t.Errorf("expected p95 290, got %f", snap.P95Us)
	}
}

func TestStats_EmptyAndNegative(t *testing.T) {
	s := NewStats(0)
	if snap := s.Snapshot(); snap.Batches != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
	s.Record(-time.Second, 1, true)
	if snap := s.Snapshot(); snap.MinUs != 0 {
		t.Errorf("expected negative duration clamped to 0, got %d", snap.MinUs)
	}
}

func TestStats_PrunesOldSamples(t *testing.T) {
	s := NewStats(time.Hour)
	s.samples = append(s.samples, batchSample{
		timestamp:  time.Now().Add(-2 * time.Hour),
		durationUs: 999,
		jobs:       5,
	})
	s.Record(10*time.Microsecond, 1, true)

	snap := s.Snapshot()
	if snap.Batches != 1 || snap.MaxUs != 10 {
		t.Errorf("expected only the recent sample, got %+v", snap)
	}
}

func TestPercentile(t *testing.T) {
	values := []int64{10, 20, 30, 40}
	tests := []struct {
		pct  float64
		want float64
	}{
		{0, 10},
		{100, 40},
		{50, 25},
		{-5, 10},
		{150, 40},
	}
	for _, tt := range tests {
		if got := percentile(values, tt.pct); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("percentile(%v): expected %v, got %v", tt.pct, tt.want, got)
		}
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}
