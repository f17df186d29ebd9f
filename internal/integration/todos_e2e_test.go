package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"todo_webapp/internal/client"
	httpServer "todo_webapp/internal/http"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/migrate"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration test against a real database: runs only if DATABASE_URL is set.
func newTestServer(t *testing.T) (*httptest.Server, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	migDir := filepath.Join("..", "..", "migrations")
	if err := migrate.New(db, migDir).Run(context.Background()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS())
	httpServer.RegisterRoutes(r, db)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

func TestTodosLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	api := client.New(srv.URL)
	ctx := context.Background()

	created, err := api.Create(ctx, "buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID <= 0 || created.Text != "buy milk" || created.Completed {
		t.Fatalf("unexpected created row: %+v", created)
	}

	todos, err := api.GetAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	lastID := int64(0)
	for _, todo := range todos {
		if todo.ID <= lastID {
			t.Fatal("list not ordered by ascending id")
		}
		lastID = todo.ID
		if todo.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created todo missing from list")
	}

	updated, err := api.Update(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.ID != created.ID || updated.Text != "buy milk" {
		t.Fatalf("unexpected updated row: %+v", updated)
	}

	if err := api.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Second delete: the row is gone, so 404.
	err = api.Delete(ctx, created.ID)
	apiErr, ok := err.(*client.APIError)
	if !ok || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: got %v, want 404", err)
	}

	todos, err = api.GetAll(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	for _, todo := range todos {
		if todo.ID == created.ID {
			t.Fatal("deleted todo still listed")
		}
	}
}

func TestUpdateMissingTodoIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	api := client.New(srv.URL)

	_, err := api.Update(context.Background(), 1<<40, true)
	apiErr, ok := err.(*client.APIError)
	if !ok || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("got %v, want 404", err)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", res.StatusCode)
	}
}
