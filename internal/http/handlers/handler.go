package handlers

import (
	"todo_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB    *pgxpool.Pool
	Todos *repository.TodoRepository
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:    db,
		Todos: repository.NewTodoRepository(db),
	}
}
