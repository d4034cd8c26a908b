package portfolio

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session is one analysis pass over a loaded dataset. Sessions live in
// memory only; nothing is persisted between runs, and derived results are
// recomputed from the full dataset whenever the row limit changes.
type Session struct {
	ID       string
	Source   string
	LoadedAt time.Time
	RowLimit int

	ds *Dataset
}

// NewSession wraps a loaded dataset with session identity.
func NewSession(source string, ds *Dataset) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now(),
		ds:       ds,
	}
	slog.Debug("session started", "id", s.ID, "source", source, "rows", ds.Len())
	return s
}

// SetRowLimit restricts analysis to the first n records. Zero or negative
// means the full dataset.
func (s *Session) SetRowLimit(n int) { s.RowLimit = n }

// Data returns the dataset with the session row limit applied.
func (s *Session) Data() *Dataset { return s.ds.Head(s.RowLimit) }

// Full returns the dataset without any row limit.
func (s *Session) Full() *Dataset { return s.ds }
