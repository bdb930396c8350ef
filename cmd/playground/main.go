// Disconnected scratch commands for poking at the MongoDB driver directly,
// outside the API's repository layer. Not used by the server.
//
// Usage:
//
//	playground connect
//	playground find
//	playground find-by-id <hex id>
//	playground update <hex id>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karanatwal4/todo-api/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if len(os.Args) < 2 {
		log.Fatalf("usage: playground <connect|find|find-by-id|update> [args]")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("unable to connect to the server: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDatabase)

	switch os.Args[1] {
	case "connect":
		connect(ctx, db)
	case "find":
		find(ctx, db)
	case "find-by-id":
		findByID(ctx, db, arg(2))
	case "update":
		update(ctx, db, arg(2))
	default:
		log.Fatalf("unknown subcommand %q", os.Args[1])
	}
}

func arg(i int) string {
	if len(os.Args) <= i {
		log.Fatalf("missing argument")
	}
	return os.Args[i]
}

// connect verifies the connection and inserts a throwaway document.
func connect(ctx context.Context, db *mongo.Database) {
	if err := db.Client().Ping(ctx, nil); err != nil {
		log.Fatalf("unable to connect to the server: %v", err)
	}
	fmt.Println("connected to mongodb server")

	res, err := db.Collection("todos").InsertOne(ctx, bson.M{
		"text":      "Something to do",
		"completed": false,
	})
	if err != nil {
		log.Fatalf("unable to insert todo: %v", err)
	}
	fmt.Printf("inserted %v\n", res.InsertedID)
}

// find lists incomplete todos and counts the collection.
func find(ctx context.Context, db *mongo.Database) {
	coll := db.Collection("todos")

	cur, err := coll.Find(ctx, bson.M{"completed": false})
	if err != nil {
		log.Fatalf("find failed: %v", err)
	}
	var todos []bson.M
	if err := cur.All(ctx, &todos); err != nil {
		log.Fatalf("decode failed: %v", err)
	}
	dump("todos", todos)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("count failed: %v", err)
	}
	fmt.Printf("todos count: %d\n", count)
}

// findByID looks a todo up by id, demonstrating the malformed-id check.
func findByID(ctx context.Context, db *mongo.Database, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		fmt.Println("id not valid")
		return
	}
	var todo bson.M
	err = db.Collection("todos").FindOne(ctx, bson.M{"_id": oid}).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		fmt.Println("id not found")
		return
	}
	if err != nil {
		log.Fatalf("find failed: %v", err)
	}
	dump("todo", todo)
}

// update runs a findOneAndUpdate with $set and $inc against a todo.
func update(ctx context.Context, db *mongo.Database, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		fmt.Println("id not valid")
		return
	}
	var updated bson.M
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = db.Collection("todos").FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set": bson.M{"completed": true},
			"$inc": bson.M{"revisions": 1},
		},
		opts,
	).Decode(&updated)
	if err != nil {
		log.Fatalf("update failed: %v", err)
	}
	dump("updated", updated)
}

func dump(label string, v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Printf("%s: %s\n", label, b)
}
