package sqldb

import "context"

const deleteAllDocuments = `DELETE FROM documents`

func (q *Queries) DeleteAllDocuments(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllDocuments)
	return err
}
