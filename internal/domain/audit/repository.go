package audit

import "context"

// Recorder appends entries. There is deliberately no update or delete.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Repository is the full store: append plus the newest-first listing the
// reporting UI reads.
type Repository interface {
	Recorder

	List(ctx context.Context, filter ListFilter) ([]Entry, int64, error)
}
