package pipeline

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/yellowpad/internal/document"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoJobs           = errors.New("no jobs to process")
	ErrTooManyJobs      = errors.New("too many jobs for document")
	ErrNotAssembled     = errors.New("no processed document available")
)

// entry is one uploaded document and the jobs queued against it.
type entry struct {
	doc       document.Document
	jobs      []document.Job
	updatedAt time.Time
}

// Store is a thread-safe in-memory registry of parsed documents and their
// insertion jobs, with TTL eviction. Nothing survives a restart.
type Store struct {
	mu   sync.Mutex
	docs map[string]*entry
	ttl  time.Duration
	now  func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		docs: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// PutDocument registers doc under id with an empty job list.
func (s *Store) PutDocument(id string, doc document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = &entry{doc: doc, jobs: []document.Job{}, updatedAt: s.now()}
}

// Document returns the parsed document stored under id.
func (s *Store) Document(id string) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return document.Document{}, ErrDocumentNotFound
	}
	return e.doc, nil
}

// AddJob appends job to the document's queue. max caps the queue length.
func (s *Store) AddJob(id string, job document.Job, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	if max > 0 && len(e.jobs) >= max {
		return fmt.Errorf("%w (%d)", ErrTooManyJobs, max)
	}
	e.jobs = append(e.jobs, job)
	e.updatedAt = s.now()
	return nil
}

// Jobs returns a copy of the document's job list.
func (s *Store) Jobs(id string) ([]document.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	out := make([]document.Job, len(e.jobs))
	copy(out, e.jobs)
	return out, nil
}

// Update runs fn on the document and its jobs under the store lock and
// replaces the stored jobs with fn's return value. Concurrent batches for
// one document are serialized this way.
func (s *Store) Update(id string, fn func(doc document.Document, jobs []document.Job) ([]document.Job, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	jobs := make([]document.Job, len(e.jobs))
	copy(jobs, e.jobs)
	updated, err := fn(e.doc, jobs)
	if err != nil {
		return err
	}
	e.jobs = updated
	e.updatedAt = s.now()
	return nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Cleanup removes documents not touched within the TTL.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.docs {
		if now.Sub(e.updatedAt) > s.ttl {
			delete(s.docs, id)
			removed++
		}
	}
	return removed
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
