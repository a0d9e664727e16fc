package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cms-admin/internal/query"
)

// ErrNoRecord is returned when no row matches the requested id
var ErrNoRecord = errors.New("record not found")

// Repository defines the persistence operations shared by every admin resource
type Repository[T any] interface {
	FindAndCount(ctx context.Context, cond query.Condition) ([]*T, int64, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, values []Assignment) (*T, error)
	Update(ctx context.Context, id int64, values []Assignment) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Table is a Repository backed by one PostgreSQL table
type Table[T any] struct {
	db          *sql.DB
	name        string
	columns     []string // qualified select list
	from        string   // FROM clause including joins
	scan        func(rowScanner) (*T, error)
	constraints map[string]string // constraint name -> client message
}

// FindAndCount returns the page of rows selected by cond and the total number of matches
func (t *Table[T]) FindAndCount(ctx context.Context, cond query.Condition) ([]*T, int64, error) {
	where, args := t.where(cond.Where)

	var total int64
	countQuery := "SELECT COUNT(*) FROM " + t.name + where
	if err := t.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}

	listQuery := t.selectSQL() + where + t.orderBy(cond.Order) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, cond.Page.PageSize, cond.Page.Offset)

	rows, err := t.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	defer rows.Close()

	items := make([]*T, 0, cond.Page.PageSize)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", t.name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating %s: %w", t.name, err)
	}

	return items, total, nil
}

// FindByID loads a single row by primary key
func (t *Table[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	q := t.selectSQL() + " WHERE " + t.name + ".id = $1"

	item, err := t.scan(t.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %d: %w", t.name, id, err)
	}
	return item, nil
}

// Create inserts a row and returns it as read back from the database
func (t *Table[T]) Create(ctx context.Context, values []Assignment) (*T, error) {
	var q string
	args := make([]any, 0, len(values))
	if len(values) == 0 {
		q = "INSERT INTO " + t.name + " DEFAULT VALUES RETURNING id"
	} else {
		cols := make([]string, len(values))
		holders := make([]string, len(values))
		for i, v := range values {
			cols[i] = v.Column
			holders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, v.Value)
		}
		q = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			t.name, strings.Join(cols, ", "), strings.Join(holders, ", "))
	}

	var id int64
	if err := t.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		if vErr := t.constraintError(err); vErr != nil {
			return nil, vErr
		}
		return nil, fmt.Errorf("failed to create %s: %w", t.name, err)
	}

	return t.FindByID(ctx, id)
}

// Update writes the given columns of one row and returns the fresh row.
// An empty assignment list only reloads the row.
func (t *Table[T]) Update(ctx context.Context, id int64, values []Assignment) (*T, error) {
	if len(values) == 0 {
		return t.FindByID(ctx, id)
	}

	sets := make([]string, 0, len(values)+1)
	args := make([]any, 0, len(values)+1)
	for i, v := range values {
		sets = append(sets, fmt.Sprintf("%s = $%d", v.Column, i+1))
		args = append(args, v.Value)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.name, strings.Join(sets, ", "), len(args))

	result, err := t.db.ExecContext(ctx, q, args...)
	if err != nil {
		if vErr := t.constraintError(err); vErr != nil {
			return nil, vErr
		}
		return nil, fmt.Errorf("failed to update %s %d: %w", t.name, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNoRecord
	}

	return t.FindByID(ctx, id)
}

// Delete removes one row
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	result, err := t.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		if vErr := t.referencedError(err, id); vErr != nil {
			return vErr
		}
		return fmt.Errorf("failed to delete %s %d: %w", t.name, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNoRecord
	}
	return nil
}

func (t *Table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.from
}

func (t *Table[T]) where(preds []query.Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}

	clauses := make([]string, len(preds))
	args := make([]any, len(preds))
	for i, p := range preds {
		op := "="
		if p.Match == query.Contains {
			op = "LIKE"
		}
		clauses[i] = fmt.Sprintf("%s.%s %s $%d", t.name, p.Column, op, i+1)
		args[i] = p.Value
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (t *Table[T]) orderBy(orders []query.Order) string {
	if len(orders) == 0 {
		return ""
	}

	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = t.name + "." + o.Column + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
