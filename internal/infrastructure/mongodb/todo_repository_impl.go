package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/internal/domain/repository"
)

type TodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{coll: db.Collection(todosCollection)}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = id
	}
	return nil
}

func (r *TodoRepository) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]entity.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_creator": creator})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	todos := []entity.Todo{}
	if err := cur.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepository) GetOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error) {
	t := &entity.Todo{}
	err := r.coll.FindOne(ctx, ownedFilter(id, creator)).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) DeleteOwned(ctx context.Context, id, creator primitive.ObjectID) (*entity.Todo, error) {
	t := &entity.Todo{}
	err := r.coll.FindOneAndDelete(ctx, ownedFilter(id, creator)).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) UpdateOwned(ctx context.Context, id, creator primitive.ObjectID, patch repository.TodoPatch) (*entity.Todo, error) {
	set := bson.M{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
		set["completedAt"] = patch.CompletedAt
	}
	if len(set) == 0 {
		return r.GetOwned(ctx, id, creator)
	}

	t := &entity.Todo{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, ownedFilter(id, creator), bson.M{"$set": set}, opts).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func ownedFilter(id, creator primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "_creator": creator}
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
