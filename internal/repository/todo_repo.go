package repository

import (
	"context"
	"errors"

	"todo_webapp/internal/db/dberr"
	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound means the referenced todo does not exist. It is an expected
// condition, not a database failure, and is never wrapped by dberr.
var ErrNotFound = errors.New("todo not found")

type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text, completed FROM todos ORDER BY id ASC`)
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] rather than null.
	res := []domain.Todo{}
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed); err != nil {
			return nil, dberr.Classify(err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}
	return res, nil
}

func (r *TodoRepository) Create(ctx context.Context, text string) (*domain.Todo, error) {
	t := &domain.Todo{Text: text}
	err := r.db.QueryRow(ctx,
		`INSERT INTO todos (text, completed) VALUES ($1, false) RETURNING id, text, completed`,
		text,
	).Scan(&t.ID, &t.Text, &t.Completed)
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return t, nil
}

func (r *TodoRepository) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.QueryRow(ctx,
		`UPDATE todos SET completed = $1 WHERE id = $2 RETURNING id, text, completed`,
		completed, id,
	).Scan(&t.ID, &t.Text, &t.Completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return dberr.Classify(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
