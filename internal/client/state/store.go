// Package state owns the client's in-memory todo list and applies mutations
// optimistically: the local change happens before the server round trip, and
// a failed round trip runs a compensating revert parameterized by the value
// captured before the change. Reverts never recompute from current state.
//
// The design assumes at most one in-flight mutation per todo id; the caller
// serializes calls. Concurrent toggles of the same id may race (a response
// arriving after the user moved on can revert a newer state) — a known,
// accepted limitation inherited from the app this client talks to.
package state

import (
	"context"
	"sort"
	"strings"
	"sync"

	"todo_webapp/internal/client"
)

// API is what the store needs from the REST client. Tests substitute a fake.
type API interface {
	GetAll(ctx context.Context) ([]client.Todo, error)
	Create(ctx context.Context, text string) (*client.Todo, error)
	Update(ctx context.Context, id int64, completed bool) (*client.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type Store struct {
	api API

	mu      sync.Mutex
	todos   []client.Todo
	loading bool
	errMsg  string
}

func New(api API) *Store {
	return &Store{api: api}
}

// Todos returns a copy of the current list.
func (s *Store) Todos() []client.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last mutation error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Load replaces the list with the server's. On failure the prior list is left
// untouched and the error message is set. Loading is cleared either way.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	todos, err := s.api.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.todos = todos
	return nil
}

// Add creates a todo on the server and appends the returned row. Blank text
// is a no-op. Add is deliberately not optimistic: the id is server-assigned,
// so there is nothing sensible to show until the response arrives. The error
// is returned as well as recorded so the caller can keep its input intact.
func (s *Store) Add(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()

	todo, err := s.api.Create(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.todos = append(s.todos, *todo)
	return nil
}

// Toggle flips the completed flag locally, then confirms with the server. On
// success the local entry is replaced with the server's row (which may carry
// concurrent changes). On failure the flag is set back to the captured
// pre-toggle value — exactly one compensating flip.
func (s *Store) Toggle(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	prev := s.todos[idx].Completed
	next := !prev
	s.todos[idx].Completed = next
	s.errMsg = ""
	s.mu.Unlock()

	updated, err := s.api.Update(ctx, id, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if i := s.indexOf(id); i >= 0 {
			s.todos[i].Completed = prev
		}
		s.errMsg = err.Error()
		return err
	}
	if i := s.indexOf(id); i >= 0 {
		s.todos[i] = *updated
	}
	return nil
}

// Remove drops the todo locally, then confirms with the server. On failure
// the captured item is re-inserted and the list re-sorted by ascending id to
// restore its position; when the snapshot did not contain the id at all the
// store falls back to a full reload rather than guessing.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	var removed *client.Todo
	if idx := s.indexOf(id); idx >= 0 {
		t := s.todos[idx]
		removed = &t
		s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
	}
	s.errMsg = ""
	s.mu.Unlock()

	err := s.api.Delete(ctx, id)
	if err == nil {
		return nil
	}

	if removed != nil {
		s.mu.Lock()
		s.todos = append(s.todos, *removed)
		sort.Slice(s.todos, func(i, j int) bool { return s.todos[i].ID < s.todos[j].ID })
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}

	// Race: the item vanished from the snapshot before the optimistic
	// removal. Reload instead of guessing position.
	_ = s.Load(ctx)
	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()
	return err
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id int64) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
