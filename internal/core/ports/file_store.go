package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded image files.
type FileStore interface {
	// Save stores the content under a newly generated name, derived from the
	// original name's extension, and returns that name.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Remove(ctx context.Context, fileName string) error
}

// FileCleaner schedules best-effort removal of stored files. Failures are
// logged by the implementation, never surfaced to the caller.
type FileCleaner interface {
	Enqueue(fileName string)
}
