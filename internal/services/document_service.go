// Package services implements the document versioning state machine on top of
// the database layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acroford/brs-agent/internal/database"
	sqldb "github.com/acroford/brs-agent/internal/database/sqlc"
	"github.com/acroford/brs-agent/internal/document"
)

// ErrNotFound is returned when the target document does not exist. Callers
// must not auto-create on this path.
var ErrNotFound = errors.New("document not found")

// ErrExists is returned when creating a document whose name is already taken.
var ErrExists = errors.New("document already exists")

// ErrAlreadyInitialized guards the one-time initialize operation. It is a
// business rejection, not a fault: the caller should switch to the append path.
var ErrAlreadyInitialized = errors.New("document already initialized")

// ErrNotInitialized guards the append path: the first version must be created
// through initialize before edits can be published.
var ErrNotInitialized = errors.New("document not initialized")

// ErrVersionConflict is returned when a publish carries an expected-version
// precondition that no longer matches the stored latestVersion.
var ErrVersionConflict = errors.New("version conflict")

// DocumentService exposes the initialize/append state machine for document
// edits. Every mutation re-reads current state inside a transaction, so two
// writers racing on the same file name serialize instead of losing an update.
type DocumentService struct {
	ctx  *database.Context
	repo *database.DocumentRepository
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(ctx *database.Context) *DocumentService {
	return &DocumentService{
		ctx:  ctx,
		repo: database.NewDocumentRepository(ctx),
	}
}

// Create registers a new document record with no payload. The first version
// is created later through Initialize.
func (s *DocumentService) Create(ctx context.Context, fileName string) (int64, error) {
	if fileName == "" {
		return 0, fmt.Errorf("document service: file name is required")
	}

	existing, err := s.repo.FindByName(ctx, fileName)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("%q: %w", fileName, ErrExists)
	}

	return s.repo.Create(ctx, fileName, "")
}

// Initialize publishes version 1 of an existing document. It never creates
// the record: a missing record is ErrNotFound, and a record that already has
// versions is ErrAlreadyInitialized.
func (s *DocumentService) Initialize(ctx context.Context, fileName, text string) error {
	if fileName == "" || text == "" {
		return fmt.Errorf("document service: file name and data are required")
	}

	return s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		record, err := findForUpdate(txCtx, q, fileName)
		if err != nil {
			return err
		}

		if record.Data.Initialized() {
			return fmt.Errorf("%q: %w", fileName, ErrAlreadyInitialized)
		}

		data := &document.VersionedData{}
		data.Append(text)

		return updateData(txCtx, q, record.ID, fileName, data)
	})
}

// Publish appends text as the next version of an initialized document and
// returns the new latestVersion. When expected is non-nil it acts as a
// compare-and-swap token: the append fails with ErrVersionConflict unless the
// stored latestVersion still equals it.
func (s *DocumentService) Publish(ctx context.Context, fileName, text string, expected *int64) (int64, error) {
	if fileName == "" || text == "" {
		return 0, fmt.Errorf("document service: file name and data are required")
	}

	var latest int64
	err := s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		record, err := findForUpdate(txCtx, q, fileName)
		if err != nil {
			return err
		}

		if !record.Data.Initialized() {
			return fmt.Errorf("%q: %w", fileName, ErrNotInitialized)
		}

		if expected != nil && record.Data.LatestVersion != *expected {
			return fmt.Errorf("%q: expected version %d, store has %d: %w",
				fileName, *expected, record.Data.LatestVersion, ErrVersionConflict)
		}

		data := record.Data.Clone()
		latest = data.Append(text)

		return updateData(txCtx, q, record.ID, fileName, data)
	})
	if err != nil {
		return 0, err
	}
	return latest, nil
}

// Get retrieves a document record by file name.
func (s *DocumentService) Get(ctx context.Context, fileName string) (*database.DocumentRecord, error) {
	record, err := s.repo.FindByName(ctx, fileName)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%q: %w", fileName, ErrNotFound)
	}
	return record, nil
}

// GetVersion retrieves one snapshot of a versioned document.
func (s *DocumentService) GetVersion(ctx context.Context, fileName string, version int64) (string, error) {
	record, err := s.Get(ctx, fileName)
	if err != nil {
		return "", err
	}
	if !record.Data.Initialized() {
		return "", fmt.Errorf("%q: %w", fileName, ErrNotInitialized)
	}
	text, ok := record.Data.Version(version)
	if !ok {
		return "", fmt.Errorf("%q version %d: %w", fileName, version, ErrNotFound)
	}
	return text, nil
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]database.DocumentRecord, error) {
	return s.repo.List(ctx)
}

// Delete removes a document record and all its versions.
func (s *DocumentService) Delete(ctx context.Context, fileName string) (bool, error) {
	return s.repo.DeleteByName(ctx, fileName)
}

func findForUpdate(ctx context.Context, q *sqldb.Queries, fileName string) (*database.DocumentRecord, error) {
	row, err := q.FindDocumentByName(ctx, fileName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", fileName, ErrNotFound)
		}
		return nil, err
	}
	return database.MapDocumentRow(row)
}

func updateData(ctx context.Context, q *sqldb.Queries, id int64, fileName string, data *document.VersionedData) error {
	raw, err := database.MarshalPayload(data)
	if err != nil {
		return err
	}

	affected, err := q.UpdateDocumentData(ctx, sqldb.UpdateDocumentDataParams{
		FileName: fileName,
		Data:     raw,
		ID:       id,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%q: %w", fileName, ErrNotFound)
	}
	return nil
}

func (s *DocumentService) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("document service: missing database context")
	}

	tx, err := s.ctx.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	queries := sqldb.New(tx)

	if err := fn(ctx, queries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}
