package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
)

// TodoPatch describes a partial update to a todo. Nil fields are left
// untouched. When Completed is set, CompletedAt carries the new timestamp
// value (nil clears it).
type TodoPatch struct {
	Text        *string
	Completed   *bool
	CompletedAt *time.Time
}

// TodoRepository defines the persistence operations for todos. Every lookup
// and mutation is filtered by both id and creator, so documents owned by
// other users are unreachable rather than merely forbidden.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]entity.Todo, error)
	GetOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error)
	// DeleteOwned removes the todo and returns its prior state.
	DeleteOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error)
	// UpdateOwned applies the patch and returns the updated document.
	UpdateOwned(ctx context.Context, id, creator primitive.ObjectID, patch TodoPatch) (*entity.Todo, error)
}
