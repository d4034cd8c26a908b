package portfolio

import (
	"strings"
	"testing"
)

func TestSessionRowLimit(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	s := NewSession("memory", ds)
	if s.ID == "" {
		t.Fatal("session ID is empty")
	}
	if s.Data().Len() != 4 {
		t.Fatalf("Data().Len = %d, want 4", s.Data().Len())
	}
	s.SetRowLimit(2)
	if s.Data().Len() != 2 {
		t.Fatalf("Data().Len = %d, want 2", s.Data().Len())
	}
	if s.Full().Len() != 4 {
		t.Fatalf("Full().Len = %d, want 4", s.Full().Len())
	}
	s.SetRowLimit(99)
	if s.Data().Len() != 4 {
		t.Fatalf("Data().Len = %d, want 4 when limit exceeds size", s.Data().Len())
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	a := NewSession("a", ds)
	b := NewSession("b", ds)
	if a.ID == b.ID {
		t.Fatalf("session IDs collide: %s", a.ID)
	}
}
