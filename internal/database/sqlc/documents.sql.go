package sqldb

import (
	"context"
	"database/sql"
)

// Document mirrors a row in the documents table.
type Document struct {
	ID        int64
	FileName  string
	Content   sql.NullString
	Data      sql.NullString
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

const findDocumentByName = `
SELECT id, file_name, content, data, created_at, updated_at
FROM documents
WHERE file_name = ?
`

func (q *Queries) FindDocumentByName(ctx context.Context, fileName string) (Document, error) {
	row := q.db.QueryRowContext(ctx, findDocumentByName, fileName)
	var d Document
	err := row.Scan(&d.ID, &d.FileName, &d.Content, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const findDocumentByID = `
SELECT id, file_name, content, data, created_at, updated_at
FROM documents
WHERE id = ?
`

func (q *Queries) FindDocumentByID(ctx context.Context, id int64) (Document, error) {
	row := q.db.QueryRowContext(ctx, findDocumentByID, id)
	var d Document
	err := row.Scan(&d.ID, &d.FileName, &d.Content, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const listDocuments = `
SELECT id, file_name, content, data, created_at, updated_at
FROM documents
ORDER BY file_name
`

func (q *Queries) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := q.db.QueryContext(ctx, listDocuments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.FileName, &d.Content, &d.Data, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const insertDocument = `
INSERT INTO documents (file_name, content)
VALUES (?, ?)
`

type InsertDocumentParams struct {
	FileName string
	Content  sql.NullString
}

func (q *Queries) InsertDocument(ctx context.Context, arg InsertDocumentParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertDocument, arg.FileName, arg.Content)
}

const updateDocumentData = `
UPDATE documents
SET file_name = ?, data = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type UpdateDocumentDataParams struct {
	FileName string
	Data     sql.NullString
	ID       int64
}

func (q *Queries) UpdateDocumentData(ctx context.Context, arg UpdateDocumentDataParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateDocumentData, arg.FileName, arg.Data, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteDocumentByName = `
DELETE FROM documents
WHERE file_name = ?
`

func (q *Queries) DeleteDocumentByName(ctx context.Context, fileName string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteDocumentByName, fileName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countDocuments = `
SELECT COUNT(*) FROM documents
`

func (q *Queries) CountDocuments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDocuments)
	var count int64
	err := row.Scan(&count)
	return count, err
}
