package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/internal/domain/repository"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyText    = errors.New("text must not be empty")
)

// TodoService is the scoped access layer for todos. Every lookup and
// mutation carries the owner's id in the filter, so a todo belonging to
// another user is indistinguishable from one that does not exist.
type TodoService struct {
	Todos  repository.TodoRepository
	Logger *logrus.Logger
}

func NewTodoService(todos repository.TodoRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Todos: todos, Logger: logger}
}

func (s *TodoService) Create(ctx context.Context, u *entity.User, text string) (*entity.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	t := &entity.Todo{
		Text:    text,
		Creator: u.ID,
	}
	if err := s.Todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, u *entity.User) ([]entity.Todo, error) {
	return s.Todos.ListByCreator(ctx, u.ID)
}

func (s *TodoService) Get(ctx context.Context, u *entity.User, id string) (*entity.Todo, error) {
	oid, ok := s.parseID(id)
	if !ok {
		return nil, ErrTodoNotFound
	}
	t, err := s.Todos.GetOwned(ctx, oid, u.ID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return t, nil
}

// Delete removes the todo and returns its prior state.
func (s *TodoService) Delete(ctx context.Context, u *entity.User, id string) (*entity.Todo, error) {
	oid, ok := s.parseID(id)
	if !ok {
		return nil, ErrTodoNotFound
	}
	t, err := s.Todos.DeleteOwned(ctx, oid, u.ID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return t, nil
}

// TodoUpdate is a partial update; nil fields are left untouched.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}

// Update applies the patch. Setting completed stamps the completion time;
// clearing it nulls the timestamp. Repeated application of the same patch is
// idempotent apart from the timestamp value itself.
func (s *TodoService) Update(ctx context.Context, u *entity.User, id string, in TodoUpdate) (*entity.Todo, error) {
	oid, ok := s.parseID(id)
	if !ok {
		return nil, ErrTodoNotFound
	}

	patch := repository.TodoPatch{}
	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return nil, ErrEmptyText
		}
		patch.Text = &text
	}
	if in.Completed != nil {
		patch.Completed = in.Completed
		if *in.Completed {
			now := time.Now().UTC()
			patch.CompletedAt = &now
		}
	}

	t, err := s.Todos.UpdateOwned(ctx, oid, u.ID, patch)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return t, nil
}

// parseID rejects malformed identifiers before any query runs. A malformed
// id maps to the same not-found outcome as a missing document.
func (s *TodoService) parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (s *TodoService) mapLookupErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTodoNotFound
	}
	if s.Logger != nil {
		s.Logger.WithError(err).Error("todo lookup failed")
	}
	return err
}
