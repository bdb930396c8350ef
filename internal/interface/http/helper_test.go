package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/internal/domain/repository"
	"github.com/karanatwal4/todo-api/internal/fixtures"
	handlers "github.com/karanatwal4/todo-api/internal/interface/http"
	"github.com/karanatwal4/todo-api/internal/router"
	"github.com/karanatwal4/todo-api/internal/router/modules"
	"github.com/karanatwal4/todo-api/pkg/helpers"
	"github.com/karanatwal4/todo-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

// -------- in-memory repositories --------

type memUserRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[primitive.ObjectID]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	cp.Tokens = append([]entity.UserToken(nil), u.Tokens...)
	return &cp
}

func (f *memUserRepo) add(u entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = copyUser(&u)
}

func (f *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.byID[u.ID] = copyUser(u)
	return nil
}

func (f *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return copyUser(u), nil
	}
	return nil, repository.ErrNotFound
}

func (f *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memUserRepo) GetByToken(ctx context.Context, id primitive.ObjectID, access, token string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, t := range u.Tokens {
		if t.Access == access && t.Token == token {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memUserRepo) PushToken(ctx context.Context, id primitive.ObjectID, t entity.UserToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Tokens = append(u.Tokens, t)
	return nil
}

func (f *memUserRepo) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (f *memUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memTodoRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*entity.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{byID: map[primitive.ObjectID]*entity.Todo{}}
}

func copyTodo(t *entity.Todo) *entity.Todo {
	cp := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}

func (f *memTodoRepo) add(t entity.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[t.ID] = copyTodo(&t)
}

func (f *memTodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	f.byID[t.ID] = copyTodo(t)
	return nil
}

func (f *memTodoRepo) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Todo{}
	for _, t := range f.byID {
		if t.Creator == creator {
			out = append(out, *copyTodo(t))
		}
	}
	return out, nil
}

func (f *memTodoRepo) GetOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok || t.Creator != creator {
		return nil, repository.ErrNotFound
	}
	return copyTodo(t), nil
}

func (f *memTodoRepo) DeleteOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok || t.Creator != creator {
		return nil, repository.ErrNotFound
	}
	delete(f.byID, id)
	return t, nil
}

func (f *memTodoRepo) UpdateOwned(ctx context.Context, id, creator primitive.ObjectID, patch repository.TodoPatch) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok || t.Creator != creator {
		return nil, repository.ErrNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
		t.CompletedAt = patch.CompletedAt
	}
	return copyTodo(t), nil
}

func (f *memTodoRepo) has(id primitive.ObjectID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok
}

var _ repository.TodoRepository = (*memTodoRepo)(nil)

// -------- server harness --------

type testAPI struct {
	engine *gin.Engine
	users  *memUserRepo
	todos  *memTodoRepo
	seed   *fixtures.Set
}

// newTestAPI builds the full route surface (user and todo modules through
// the registry) over in-memory repositories seeded with the fixture set.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtm := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	set, err := fixtures.New(jwtm)
	require.NoError(t, err)

	users := newMemUserRepo()
	users.add(set.UserOne)
	users.add(set.UserTwo)
	todos := newMemTodoRepo()
	todos.add(set.TodoOne)
	todos.add(set.TodoTwo)

	authSvc := application.NewAuthService(users, jwtm, logger)
	todoSvc := application.NewTodoService(todos, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger), authSvc))
	reg.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, logger), authSvc))
	reg.RegisterAll()

	return &testAPI{engine: engine, users: users, todos: todos, seed: set}
}

// do performs a request with an optional token and JSON body.
func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth", token)
	}
	rr := httptest.NewRecorder()
	a.engine.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rr.Code, "unexpected status, body: %s", rr.Body.String())
}
