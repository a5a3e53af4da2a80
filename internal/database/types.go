package database

import (
	"time"

	"github.com/acroford/brs-agent/internal/document"
)

// DocumentRecord represents a row in the documents table. Each record is
// keyed by a unique file name and carries either a versioned payload or, for
// documents predating versioning, a plain content body.
type DocumentRecord struct {
	ID        int64
	FileName  string
	Content   string
	Data      *document.VersionedData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Versioned reports whether the record carries a versioned payload.
func (r *DocumentRecord) Versioned() bool {
	return r != nil && r.Data.Initialized()
}
