// Package collection persists per-card ownership state as a single JSON
// document keyed by card identifier.
package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCondition is the condition assigned when a card is first touched.
const DefaultCondition = "Near Mint"

// Conditions lists the accepted card conditions, best to worst.
var Conditions = []string{
	"Near Mint",
	"Lightly Played",
	"Moderately Played",
	"Heavily Played",
	"Damaged",
}

// ValidCondition reports whether s is one of the accepted conditions.
func ValidCondition(s string) bool {
	for _, c := range Conditions {
		if c == s {
			return true
		}
	}
	return false
}

// Record is the mutable ownership state for one card. Quantity stays
// meaningful independently of Collected; it is floor-clamped at 1 and never
// reset when the card is un-collected.
type Record struct {
	Collected bool   `json:"collected"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

func defaultRecord() *Record {
	return &Record{
		Collected: false,
		Condition: DefaultCondition,
		Quantity:  1,
		Notes:     "",
	}
}

// Store holds the id -> Record mapping and writes the whole mapping back to
// its file on every mutation. Records for a catalog that has since changed
// are tolerated and simply never looked up. All methods are safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	records map[string]*Record
}

// NewStore creates a store backed by the given file without touching disk.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]*Record),
	}
}

// Open creates a store and loads any previously saved state. Absent or
// malformed data degrades to an empty store; no error is surfaced.
func Open(path string) *Store {
	s := NewStore(path)
	s.Load()
	return s
}

// Load reads the saved mapping from disk. A missing file or a parse failure
// leaves the store empty.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var records map[string]*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return
	}
	if records == nil {
		return
	}

	for id, r := range records {
		// A JSON null value decodes to a nil record.
		if r == nil {
			delete(records, id)
			continue
		}
		if r.Quantity < 1 {
			r.Quantity = 1
		}
		if r.Condition == "" {
			r.Condition = DefaultCondition
		}
	}
	s.records = records
}

// Save serializes the full mapping back to the store's file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create collection directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write collection file: %w", err)
	}

	return nil
}

func (s *Store) getOrCreateLocked(id string) *Record {
	if r, ok := s.records[id]; ok {
		return r
	}
	r := defaultRecord()
	s.records[id] = r
	return r
}

// GetOrCreate returns a copy of the record for a card identifier, lazily
// inserting a default record on first access.
func (s *Store) GetOrCreate(id string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreateLocked(id)
}

// Get returns a copy of the record for id; ok is false when the card has
// never been touched.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok {
		return *r, true
	}
	return Record{}, false
}

// Collected reports whether the card with the given id is marked collected.
func (s *Store) Collected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.records[id]
	return r != nil && r.Collected
}

// Records returns a copy of the full mapping.
func (s *Store) Records() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Record, len(s.records))
	for id, r := range s.records {
		out[id] = *r
	}
	return out
}

// Len returns the number of touched records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SetCollected updates the collected flag and persists.
func (s *Store) SetCollected(id string, collected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Collected = collected
	return s.saveLocked()
}

// SetCondition updates the condition and persists. Unknown conditions are
// rejected.
func (s *Store) SetCondition(id, condition string) error {
	if !ValidCondition(condition) {
		return fmt.Errorf("unknown condition %q", condition)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Condition = condition
	return s.saveLocked()
}

// SetNotes updates the free-text notes and persists.
func (s *Store) SetNotes(id, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Notes = notes
	return s.saveLocked()
}

// SetQuantity sets the owned quantity. Quantities below 1 are rejected.
func (s *Store) SetQuantity(id string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Quantity = quantity
	return s.saveLocked()
}

// IncrementQuantity adds one to the owned quantity and persists.
func (s *Store) IncrementQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(id).Quantity++
	return s.saveLocked()
}

// DecrementQuantity subtracts one from the owned quantity, with a floor of
// 1. At the floor the call is a no-op and nothing is written.
func (s *Store) DecrementQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.getOrCreateLocked(id)
	if r.Quantity <= 1 {
		return nil
	}
	r.Quantity--
	return s.saveLocked()
}

// Update replaces the record for id wholesale and persists. The quantity
// floor and condition validity still apply.
func (s *Store) Update(id string, rec Record) error {
	if rec.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", rec.Quantity)
	}
	if !ValidCondition(rec.Condition) {
		return fmt.Errorf("unknown condition %q", rec.Condition)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.getOrCreateLocked(id)
	*r = rec
	return s.saveLocked()
}

// BulkCollect marks every given id as collected, leaving condition,
// quantity and notes untouched, with a single save at the end.
func (s *Store) BulkCollect(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.getOrCreateLocked(id).Collected = true
	}
	return s.saveLocked()
}
