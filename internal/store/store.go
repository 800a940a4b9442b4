package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"talentsift/resume-screener/internal/models"
)

// Store is the single shared aggregate: the resume record set, the job
// description and the accumulated results. Records are mutated only by
// whole-record replacement keyed by ID, and status transitions are checked
// so a record never moves backward through its lifecycle.
type Store struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	records map[uuid.UUID]models.ResumeRecord
	job     models.JobDescription
	results []models.AnalysisResult
	summary *models.BatchSummary
	running bool
	lastErr string
}

func New() *Store {
	return &Store{
		records: make(map[uuid.UUID]models.ResumeRecord),
	}
}

// AddRecord inserts a record unless one with the same identity already
// exists. It reports whether the record was added.
func (s *Store) AddRecord(rec models.ResumeRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return false
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return true
}

// Records returns copies of all records in insertion order.
func (s *Store) Records() []models.ResumeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ResumeRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

func (s *Store) Get(id uuid.UUID) (models.ResumeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	return rec, ok
}

// Replace swaps in a new version of an existing record. A status change that
// would move the record backward is rejected.
func (s *Store) Replace(rec models.ResumeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[rec.ID]
	if !ok {
		return fmt.Errorf("record %s not found", rec.ID)
	}
	if current.Status != rec.Status && !models.CanTransition(current.Status, rec.Status) {
		return fmt.Errorf("invalid status transition %s -> %s for record %s", current.Status, rec.Status, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear drops all records, results and the run summary. The job description
// is kept; it has its own replacement semantics.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.records = make(map[uuid.UUID]models.ResumeRecord)
	s.results = nil
	s.summary = nil
	s.lastErr = ""
}

// SetJob replaces the job description entirely; the previous source, whatever
// it was, stops being authoritative.
func (s *Store) SetJob(job models.JobDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job = job
}

func (s *Store) Job() models.JobDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job
}

// AppendResults adds a finished batch of results to the running list, making
// them observable before later batches complete.
func (s *Store) AppendResults(results []models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, results...)
}

func (s *Store) Results() []models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AnalysisResult, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Store) SetSummary(summary models.BatchSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
}

func (s *Store) Summary() *models.BatchSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.summary == nil {
		return nil
	}
	out := *s.summary
	return &out
}

// TryBeginRun marks a pipeline run as active. It reports false when a run is
// already in flight.
func (s *Store) TryBeginRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Store) EndRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

func (s *Store) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// SetLastError records the most recent batch-level error for display.
func (s *Store) SetLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
