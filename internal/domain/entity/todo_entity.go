package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is a single todo item owned by the user that created it.
// CompletedAt is non-nil exactly while Completed is true.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *time.Time         `bson:"completedAt" json:"completedAt"`
	Creator     primitive.ObjectID `bson:"_creator" json:"_creator"`
}
