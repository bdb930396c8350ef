// Package fixtures holds the canonical seed data set shared by the seeding
// binary and the tests: two users (the first with one active session token)
// and one todo each (the second already completed).
package fixtures

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/pkg/helpers"
)

const (
	UserOneEmail    = "karan@abc.com"
	UserOnePassword = "password1"
	UserTwoEmail    = "atwal@abc.com"
	UserTwoPassword = "password2"
)

type Set struct {
	UserOne entity.User
	UserTwo entity.User
	// UserOneToken is the pre-issued session token in UserOne's token list.
	UserOneToken string

	TodoOne entity.Todo
	TodoTwo entity.Todo
}

// New builds a fixture set with freshly generated ids, hashed passwords and
// a signed token for the first user.
func New(jwtm *helpers.JWTManager) (*Set, error) {
	userOneID := primitive.NewObjectID()
	userTwoID := primitive.NewObjectID()

	token, err := jwtm.Generate(userOneID.Hex())
	if err != nil {
		return nil, err
	}
	hashOne, err := helpers.HashPassword(UserOnePassword)
	if err != nil {
		return nil, err
	}
	hashTwo, err := helpers.HashPassword(UserTwoPassword)
	if err != nil {
		return nil, err
	}

	completedAt := time.Date(2018, time.March, 14, 12, 0, 0, 0, time.UTC)

	return &Set{
		UserOne: entity.User{
			ID:       userOneID,
			Email:    UserOneEmail,
			Password: hashOne,
			Tokens:   []entity.UserToken{{Access: helpers.AccessAuth, Token: token}},
		},
		UserTwo: entity.User{
			ID:       userTwoID,
			Email:    UserTwoEmail,
			Password: hashTwo,
			Tokens:   []entity.UserToken{},
		},
		UserOneToken: token,
		TodoOne: entity.Todo{
			ID:      primitive.NewObjectID(),
			Text:    "First todo",
			Creator: userOneID,
		},
		TodoTwo: entity.Todo{
			ID:          primitive.NewObjectID(),
			Text:        "Second todo",
			Completed:   true,
			CompletedAt: &completedAt,
			Creator:     userTwoID,
		},
	}, nil
}

// PopulateUsers clears the users collection and inserts the fixture users.
func (s *Set) PopulateUsers(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("users")
	if err := coll.Drop(ctx); err != nil {
		return err
	}
	_, err := coll.InsertMany(ctx, []interface{}{s.UserOne, s.UserTwo})
	return err
}

// PopulateTodos clears the todos collection and inserts the fixture todos.
func (s *Set) PopulateTodos(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("todos")
	if err := coll.Drop(ctx); err != nil {
		return err
	}
	_, err := coll.InsertMany(ctx, []interface{}{s.TodoOne, s.TodoTwo})
	return err
}
