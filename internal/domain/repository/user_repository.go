package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no document matches the filter.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the persistence operations for users.
// Only the auth service may mutate the token list.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByToken looks up a user by id with the given token string present
	// in its token list under the given capability label.
	GetByToken(ctx context.Context, id primitive.ObjectID, access, token string) (*entity.User, error)
	PushToken(ctx context.Context, id primitive.ObjectID, t entity.UserToken) error
	// PullToken removes the matching token entry. Pulling an absent token
	// is not an error.
	PullToken(ctx context.Context, id primitive.ObjectID, token string) error
}
