package state

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"todo_webapp/internal/client"
)

// fakeAPI lets each test fail individual operations.
type fakeAPI struct {
	todos []client.Todo

	failGetAll bool
	failCreate bool
	failUpdate bool
	failDelete bool

	nextID int64
}

var errServer = errors.New("server unavailable")

func (f *fakeAPI) GetAll(ctx context.Context) ([]client.Todo, error) {
	if f.failGetAll {
		return nil, errServer
	}
	out := make([]client.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, text string) (*client.Todo, error) {
	if f.failCreate {
		return nil, errServer
	}
	f.nextID++
	t := client.Todo{ID: f.nextID, Text: text}
	f.todos = append(f.todos, t)
	return &t, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int64, completed bool) (*client.Todo, error) {
	if f.failUpdate {
		return nil, errServer
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Completed = completed
			t := f.todos[i]
			return &t, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "Todo not found"}
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	if f.failDelete {
		return errServer
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: 404, Message: "Todo not found"}
}

func ids(todos []client.Todo) []int64 {
	out := make([]int64, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestLoad_ReplacesList(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}}
	s := New(api)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("ids = %v", got)
	}
	if s.Loading() {
		t.Fatal("loading should be cleared")
	}
}

func TestLoad_FailureKeepsPriorList(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1, Text: "a"}}}
	s := New(api)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	api.failGetAll = true
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("prior list mutated: %v", got)
	}
	if s.Err() == "" {
		t.Fatal("error message not set")
	}
	if s.Loading() {
		t.Fatal("loading must be cleared on failure too")
	}
}

func TestAdd_BlankIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s := New(api)

	if err := s.Add(context.Background(), "   "); err != nil {
		t.Fatalf("blank add: %v", err)
	}
	if len(s.Todos()) != 0 || len(api.todos) != 0 {
		t.Fatal("blank add must not reach the API or mutate the list")
	}
}

func TestAdd_AppendsServerRow(t *testing.T) {
	s := New(&fakeAPI{nextID: 41})

	if err := s.Add(context.Background(), "  buy milk  "); err != nil {
		t.Fatal(err)
	}
	todos := s.Todos()
	if len(todos) != 1 || todos[0].ID != 42 || todos[0].Text != "buy milk" {
		t.Fatalf("unexpected list %+v", todos)
	}
	if todos[0].Completed {
		t.Fatal("new todo must start incomplete")
	}
}

func TestAdd_FailureDoesNotMutateList(t *testing.T) {
	api := &fakeAPI{failCreate: true}
	s := New(api)

	err := s.Add(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error to be re-raised")
	}
	if len(s.Todos()) != 0 {
		t.Fatal("failed add mutated the list")
	}
	if s.Err() == "" {
		t.Fatal("error message not set")
	}
}

func TestToggle_OptimisticThenConfirmed(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1, Text: "a", Completed: false}}}
	s := New(api)
	s.Load(context.Background())

	if err := s.Toggle(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if !s.Todos()[0].Completed {
		t.Fatal("toggle did not stick")
	}
}

func TestToggle_FailureRevertsToCapturedValue(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1, Text: "a", Completed: false}}, failUpdate: true}
	s := New(api)
	s.Load(context.Background())

	if err := s.Toggle(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if s.Todos()[0].Completed {
		t.Fatal("completed flag not reverted to false")
	}
	if s.Err() == "" {
		t.Fatal("error message not set")
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1}}}
	s := New(api)
	s.Load(context.Background())

	if err := s.Toggle(context.Background(), 99); err != nil {
		t.Fatalf("unknown id: %v", err)
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("list changed: %v", got)
	}
}

func TestRemove_Optimistic(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1}, {ID: 2}, {ID: 3}}}
	s := New(api)
	s.Load(context.Background())

	if err := s.Remove(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Fatalf("ids = %v", got)
	}
}

func TestRemove_FailureRestoresOrder(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1}, {ID: 2}, {ID: 3}}, failDelete: true}
	s := New(api)
	s.Load(context.Background())

	if err := s.Remove(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("list not restored in id order: %v", got)
	}
	if s.Err() == "" {
		t.Fatal("error message not set")
	}
}

func TestRemove_MissingFromSnapshotFallsBackToReload(t *testing.T) {
	api := &fakeAPI{todos: []client.Todo{{ID: 1}, {ID: 2}}, failDelete: true}
	s := New(api)
	// Local list is empty (never loaded), so the snapshot cannot contain 2.
	if err := s.Remove(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}
	if got := ids(s.Todos()); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("reload fallback did not happen: %v", got)
	}
}
