package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/karanatwal4/todo-api/config"
	"github.com/karanatwal4/todo-api/internal/fixtures"
	"github.com/karanatwal4/todo-api/internal/infrastructure/mongodb"
	"github.com/karanatwal4/todo-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout, cfg.MongoMaxPool)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	set, err := fixtures.New(jwtManager)
	if err != nil {
		log.Fatalf("failed to build fixtures: %v", err)
	}

	if err := set.PopulateUsers(ctx, db); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	if err := set.PopulateTodos(ctx, db); err != nil {
		log.Fatalf("failed to seed todos: %v", err)
	}

	fmt.Printf("seeded user: id=%s email=%s password=%s token=%s\n",
		set.UserOne.ID.Hex(), set.UserOne.Email, fixtures.UserOnePassword, set.UserOneToken)
	fmt.Printf("seeded user: id=%s email=%s password=%s\n",
		set.UserTwo.ID.Hex(), set.UserTwo.Email, fixtures.UserTwoPassword)
	fmt.Printf("seeded todos: %q (owner %s), %q (owner %s, completed)\n",
		set.TodoOne.Text, set.TodoOne.Creator.Hex(), set.TodoTwo.Text, set.TodoTwo.Creator.Hex())
}
