package reorder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Store reads and writes the order column of a collection.
type Store interface {
	// Sequence returns the collection in display order.
	Sequence(ctx context.Context, c Collection) ([]Position, error)
	// Persist writes every position atomically.
	Persist(ctx context.Context, c Collection, positions []Position) error
	// Remove deletes one entry and renumbers the rest 0..N-1 in the same
	// transaction. It reports whether the entry existed.
	Remove(ctx context.Context, c Collection, id string) (bool, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Sequence(ctx context.Context, c Collection) ([]Position, error) {
	table := c.Table()
	if table == "" {
		return nil, ErrUnknownCollection
	}

	return sequence(ctx, s.db, table)
}

func sequence(ctx context.Context, q querier, table string) ([]Position, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, sort_order FROM %s ORDER BY sort_order ASC, created_at ASC, id ASC`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Order); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Persist issues one UPDATE with a CASE over the ids so the collection is
// never observed half reordered.
func (s *SQLStore) Persist(ctx context.Context, c Collection, positions []Position) error {
	table := c.Table()
	if table == "" {
		return ErrUnknownCollection
	}
	if len(positions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := writePositions(ctx, tx, table, positions); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes the row and closes the gap it leaves. A failed renumber
// rolls the delete back with it.
func (s *SQLStore) Remove(ctx context.Context, c Collection, id string) (bool, error) {
	table := c.Table()
	if table == "" {
		return false, ErrUnknownCollection
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	current, err := sequence(ctx, tx, table)
	if err != nil {
		return false, err
	}
	if diff := changed(current, Assign(ids(current))); len(diff) > 0 {
		if err := writePositions(ctx, tx, table, diff); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

func writePositions(ctx context.Context, tx *sql.Tx, table string, positions []Position) error {
	query, args := batchUpdate(table, positions)
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(positions)) {
		return fmt.Errorf("%w: updated %d of %d rows", ErrStaleSequence, affected, len(positions))
	}
	return nil
}

// batchUpdate builds
//
//	UPDATE t SET sort_order = CASE id WHEN $1 THEN 0 ... END WHERE id IN ($1, ...)
//
// Orders are inlined integers; ids are bound once and reused by ordinal.
func batchUpdate(table string, positions []Position) (string, []interface{}) {
	var b strings.Builder
	args := make([]interface{}, 0, len(positions))
	in := make([]string, 0, len(positions))

	fmt.Fprintf(&b, "UPDATE %s SET sort_order = CASE id", table)
	for i, p := range positions {
		ph := fmt.Sprintf("$%d", i+1)
		fmt.Fprintf(&b, " WHEN %s THEN %d", ph, p.Order)
		in = append(in, ph)
		args = append(args, p.ID)
	}
	fmt.Fprintf(&b, " END WHERE id IN (%s)", strings.Join(in, ", "))
	return b.String(), args
}
