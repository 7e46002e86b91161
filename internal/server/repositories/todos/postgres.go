package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapi/internal/common"
	"todoapi/internal/dbx"
	"todoapi/internal/server/models"
)

// PostgresRepository runs todo queries against whichever handle it is
// bound to, typically the single connection owned by the request.
// All request-derived values travel as query parameters, never as SQL text.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListOpen returns every item not yet marked complete.
func (r *PostgresRepository) ListOpen(ctx context.Context) ([]models.Todo, error) {
	return r.list(ctx,
		`SELECT id, flag, plan, result FROM todos
		 WHERE flag <> 1
		 ORDER BY id`)
}

// ListComplete returns every completed item.
func (r *PostgresRepository) ListComplete(ctx context.Context) ([]models.Todo, error) {
	return r.list(ctx,
		`SELECT id, flag, plan, result FROM todos
		 WHERE flag = 1
		 ORDER BY id`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Flag, &t.Plan, &t.Result); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

// GetByID returns the item with the given id, or common.ErrNotFound when
// no row matches.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query :=
		`SELECT id, flag, plan, result FROM todos
		 WHERE id = $1
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&todo.ID, &todo.Flag, &todo.Plan, &todo.Result)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Create inserts a new item and fills in the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`INSERT INTO todos (flag, plan, result)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.Flag, todo.Plan, todo.Result).Scan(&todo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Update overwrites flag, plan and result of the row with the given id and
// reports how many rows matched. Zero is a legitimate outcome.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (int64, error) {
	query :=
		`UPDATE todos SET flag = $1, plan = $2, result = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, todo.Flag, todo.Plan, todo.Result, todo.ID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}

// Delete removes the row with the given id and reports how many rows
// matched. Deleting an absent id affects zero rows and is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query :=
		`DELETE FROM todos
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
