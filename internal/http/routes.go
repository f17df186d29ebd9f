package http

import (
	"todo_webapp/internal/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	r.GET("/health", healthHandler.Health)

	r.GET("/todos", h.ListTodos)
	r.POST("/todos", h.CreateTodo)
	r.PUT("/todos/:id", h.UpdateTodo)
	r.DELETE("/todos/:id", h.DeleteTodo)
}
