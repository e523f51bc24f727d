package collection

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "collection.json"))
}

func TestGetOrCreateDefaults(t *testing.T) {
	s := newTestStore(t)

	r := s.GetOrCreate("card-1")
	if r.Collected {
		t.Error("new record should not be collected")
	}
	if r.Condition != DefaultCondition {
		t.Errorf("condition = %q, want %q", r.Condition, DefaultCondition)
	}
	if r.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", r.Quantity)
	}
	if r.Notes != "" {
		t.Errorf("notes = %q, want empty", r.Notes)
	}
}

func TestGetUntouched(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.Get("never-seen"); ok {
		t.Error("Get should report false for an untouched card")
	}
	if s.Collected("never-seen") {
		t.Error("untouched card should not be collected")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")

	s := NewStore(path)
	if err := s.SetCollected("card-1", true); err != nil {
		t.Fatalf("SetCollected: %v", err)
	}
	if err := s.SetCondition("card-1", "Lightly Played"); err != nil {
		t.Fatalf("SetCondition: %v", err)
	}
	if err := s.SetQuantity("card-1", 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetNotes("card-1", "foil"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}

	reloaded := Open(path)
	r, ok := reloaded.Get("card-1")
	if !ok {
		t.Fatal("record missing after reload")
	}
	if !r.Collected {
		t.Error("collected flag lost on reload")
	}
	if r.Condition != "Lightly Played" {
		t.Errorf("condition = %q, want %q", r.Condition, "Lightly Played")
	}
	if r.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", r.Quantity)
	}
	if r.Notes != "foil" {
		t.Errorf("notes = %q, want %q", r.Notes, "foil")
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for a fresh store", s.Len())
	}
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := Open(path)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for malformed data", s.Len())
	}
}

func TestLoadDropsNullRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	data := `{"card-1":null,"card-2":{"collected":true,"condition":"Near Mint","quantity":1,"notes":""}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := Open(path)
	if _, ok := s.Get("card-1"); ok {
		t.Error("null entry should be dropped")
	}
	if !s.Collected("card-2") {
		t.Error("valid entry next to a null one should survive")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestLoadClampsBadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	data := `{"card-1":{"collected":true,"condition":"","quantity":0,"notes":""}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := Open(path)
	r, ok := s.Get("card-1")
	if !ok {
		t.Fatal("record missing")
	}
	if r.Quantity != 1 {
		t.Errorf("quantity = %d, want clamped to 1", r.Quantity)
	}
	if r.Condition != DefaultCondition {
		t.Errorf("condition = %q, want %q", r.Condition, DefaultCondition)
	}
}

func TestQuantityFloor(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetQuantity("card-1", 0); err == nil {
		t.Error("SetQuantity(0) should be rejected")
	}
	if err := s.SetQuantity("card-1", -3); err == nil {
		t.Error("SetQuantity(-3) should be rejected")
	}

	if err := s.IncrementQuantity("card-1"); err != nil {
		t.Fatalf("IncrementQuantity: %v", err)
	}
	if got := s.GetOrCreate("card-1").Quantity; got != 2 {
		t.Errorf("quantity = %d, want 2 after increment", got)
	}

	if err := s.DecrementQuantity("card-1"); err != nil {
		t.Fatalf("DecrementQuantity: %v", err)
	}
	if err := s.DecrementQuantity("card-1"); err != nil {
		t.Fatalf("DecrementQuantity at floor: %v", err)
	}
	if got := s.GetOrCreate("card-1").Quantity; got != 1 {
		t.Errorf("quantity = %d, want floor of 1", got)
	}
}

func TestDecrementAtFloorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	s := NewStore(path)

	if err := s.DecrementQuantity("card-1"); err != nil {
		t.Fatalf("DecrementQuantity: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("decrement at the floor should not touch disk")
	}
}

func TestSetConditionRejectsUnknown(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetCondition("card-1", "Mint"); err == nil {
		t.Error("unknown condition should be rejected")
	}
	for _, c := range Conditions {
		if err := s.SetCondition("card-1", c); err != nil {
			t.Errorf("SetCondition(%q): %v", c, err)
		}
	}
}

func TestQuantitySurvivesUncollect(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetQuantity("card-1", 3); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetCollected("card-1", true); err != nil {
		t.Fatalf("SetCollected: %v", err)
	}
	if err := s.SetCollected("card-1", false); err != nil {
		t.Fatalf("SetCollected: %v", err)
	}

	if got := s.GetOrCreate("card-1").Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3 after un-collecting", got)
	}
}

func TestUpdateValidates(t *testing.T) {
	s := newTestStore(t)

	err := s.Update("card-1", Record{Collected: true, Condition: "Damaged", Quantity: 0})
	if err == nil {
		t.Error("Update with zero quantity should be rejected")
	}
	err = s.Update("card-1", Record{Collected: true, Condition: "Pristine", Quantity: 1})
	if err == nil {
		t.Error("Update with unknown condition should be rejected")
	}

	if err := s.Update("card-1", Record{Collected: true, Condition: "Damaged", Quantity: 2, Notes: "signed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	r, _ := s.Get("card-1")
	if !r.Collected || r.Condition != "Damaged" || r.Quantity != 2 || r.Notes != "signed" {
		t.Errorf("record after Update = %+v", r)
	}
}

func TestBulkCollect(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetQuantity("b", 3); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.BulkCollect([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("BulkCollect: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if !s.Collected(id) {
			t.Errorf("%q not collected after bulk collect", id)
		}
	}
	if got := s.GetOrCreate("b").Quantity; got != 3 {
		t.Errorf("quantity = %d, bulk collect should not reset quantity", got)
	}
}

func TestRecordsReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetCollected("card-1", true); err != nil {
		t.Fatalf("SetCollected: %v", err)
	}

	records := s.Records()
	rec := records["card-1"]
	rec.Collected = false
	records["card-1"] = rec

	if !s.Collected("card-1") {
		t.Error("mutating the returned map should not affect the store")
	}
}
