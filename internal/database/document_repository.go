package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sqldb "github.com/acroford/brs-agent/internal/database/sqlc"
	"github.com/acroford/brs-agent/internal/document"
)

// DocumentRepository translates file names to records and persists mutated
// payloads. It performs a single attempt per call: no caching, no retries.
type DocumentRepository struct {
	ctx *Context
}

func NewDocumentRepository(dbCtx *Context) *DocumentRepository {
	return &DocumentRepository{ctx: dbCtx}
}

// FindByName looks up the unique record whose file_name equals the input.
// A nil record with a nil error means no record matched; callers treat that
// as a normal outcome, not a fault.
func (r *DocumentRepository) FindByName(ctx context.Context, fileName string) (*DocumentRecord, error) {
	if fileName == "" {
		return nil, fmt.Errorf("document repository: file name must not be empty")
	}

	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("document repository: missing database context")
	}

	row, err := queries.FindDocumentByName(ctx, fileName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return MapDocumentRow(row)
}

// FindByID fetches the full record including its payload. Unlike FindByName,
// a vanished id is a fault: it means the record was deleted underneath us.
func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*DocumentRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("document repository: missing database context")
	}

	row, err := queries.FindDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document repository: record %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return MapDocumentRow(row)
}

// List returns all document records ordered by file name.
func (r *DocumentRepository) List(ctx context.Context) ([]DocumentRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("document repository: missing database context")
	}

	rows, err := queries.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]DocumentRecord, 0, len(rows))
	for _, row := range rows {
		record, err := MapDocumentRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, nil
}

// Create inserts a new record with no payload and returns its id.
func (r *DocumentRepository) Create(ctx context.Context, fileName, content string) (int64, error) {
	if fileName == "" {
		return 0, fmt.Errorf("document repository: file name must not be empty")
	}

	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("document repository: missing database context")
	}

	res, err := queries.InsertDocument(ctx, sqldb.InsertDocumentParams{
		FileName: fileName,
		Content:  nullString(content),
	})
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateData writes the file name and the complete payload back to the store.
// This is a full overwrite of the data field, not a merge: callers must supply
// the entire desired versions map and latestVersion.
func (r *DocumentRepository) UpdateData(ctx context.Context, id int64, fileName string, data *document.VersionedData) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("document repository: missing database context")
	}

	raw, err := MarshalPayload(data)
	if err != nil {
		return err
	}

	affected, err := queries.UpdateDocumentData(ctx, sqldb.UpdateDocumentDataParams{
		FileName: fileName,
		Data:     raw,
		ID:       id,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("document repository: record %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByName removes a record and reports whether anything was deleted.
func (r *DocumentRepository) DeleteByName(ctx context.Context, fileName string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("document repository: missing database context")
	}

	affected, err := queries.DeleteDocumentByName(ctx, fileName)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the number of stored documents.
func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("document repository: missing database context")
	}
	return queries.CountDocuments(ctx)
}

// MarshalPayload encodes a versioned payload for storage in the data column.
func MarshalPayload(data *document.VersionedData) (sql.NullString, error) {
	if data == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("document repository: encode payload: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// MapDocumentRow converts a raw documents row into a DocumentRecord,
// decoding the JSON payload when present.
func MapDocumentRow(row sqldb.Document) (*DocumentRecord, error) {
	record := DocumentRecord{
		ID:        row.ID,
		FileName:  row.FileName,
		Content:   optionalString(row.Content),
		CreatedAt: optionalTime(row.CreatedAt),
		UpdatedAt: optionalTime(row.UpdatedAt),
	}

	if row.Data.Valid && row.Data.String != "" {
		var data document.VersionedData
		if err := json.Unmarshal([]byte(row.Data.String), &data); err != nil {
			return nil, fmt.Errorf("document repository: decode payload for %q: %w", row.FileName, err)
		}
		record.Data = &data
	}

	return &record, nil
}
