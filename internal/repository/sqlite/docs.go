package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"school-cms/internal/docstore"
	"school-cms/internal/repository"
)

// documents is a sqlite-backed document collection: one row per record,
// keyed by the record's generated id, the full JSON document in a single
// column. Instant fields inside the document are kept in their canonical
// string encoding by the docstore codec.
type documents struct {
	db           *sql.DB
	table        string
	instantField string
}

func (d documents) init(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);`, d.table)
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s table: %w", d.table, err)
	}
	return nil
}

func (d documents) insert(ctx context.Context, id string, doc []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, d.table)
	if _, err := d.db.ExecContext(ctx, query, id, string(doc)); err != nil {
		return fmt.Errorf("insert into %s: %w", d.table, err)
	}
	return nil
}

func (d documents) get(ctx context.Context, id string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, d.table)
	var raw string
	if err := d.db.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select from %s: %w", d.table, err)
	}
	return []byte(raw), nil
}

func (d documents) list(ctx context.Context) ([][]byte, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY rowid`, d.table)
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", d.table, err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", d.table, err)
		}
		docs = append(docs, []byte(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", d.table, err)
	}
	return docs, nil
}

// patch merges the supplied fields into the stored document inside a
// transaction and returns the merged document.
func (d documents) patch(ctx context.Context, id string, fields map[string]any) ([]byte, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin %s patch: %w", d.table, err)
	}
	defer tx.Rollback()

	var raw string
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, d.table)
	if err := tx.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select from %s: %w", d.table, err)
	}

	merged, err := docstore.MergePatch([]byte(raw), fields, d.instantField)
	if err != nil {
		return nil, err
	}

	query = fmt.Sprintf(`UPDATE %s SET doc = ? WHERE id = ?`, d.table)
	if _, err := tx.ExecContext(ctx, query, string(merged), id); err != nil {
		return nil, fmt.Errorf("update %s: %w", d.table, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s patch: %w", d.table, err)
	}
	return merged, nil
}

func (d documents) delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, d.table)
	res, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", d.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", d.table, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (d documents) count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, d.table)
	var n int64
	if err := d.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", d.table, err)
	}
	return n, nil
}
