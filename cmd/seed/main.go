package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/recipehub/recipehub/config"
	"github.com/recipehub/recipehub/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	email := "demo@recipehub.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = conn.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	type seedRecipe struct {
		title        string
		cuisine      string
		ingredients  []string
		instructions []string
		owned        bool
	}
	recipes := []seedRecipe{
		{
			title:        "Pancakes",
			cuisine:      "American",
			ingredients:  []string{"1 cup flour", "1 cup milk", "1 egg", "1 tbsp sugar", "1 tsp baking powder"},
			instructions: []string{"Whisk the dry ingredients", "Stir in milk and egg", "Cook on a greased griddle until golden"},
			owned:        true,
		},
		{
			title:        "Spaghetti Aglio e Olio",
			cuisine:      "Italian",
			ingredients:  []string{"200g spaghetti", "4 cloves garlic", "60ml olive oil", "1 tsp chili flakes", "parsley"},
			instructions: []string{"Boil the spaghetti", "Gently fry sliced garlic in oil", "Toss pasta with the oil and chili", "Finish with parsley"},
			owned:        true,
		},
		{
			// Owned by nobody; immutable through the API.
			title:        "House Miso Soup",
			cuisine:      "Japanese",
			ingredients:  []string{"4 cups dashi", "3 tbsp miso paste", "tofu", "wakame", "scallions"},
			instructions: []string{"Warm the dashi", "Dissolve the miso", "Add tofu and wakame", "Top with scallions"},
		},
	}

	for _, r := range recipes {
		owner := ""
		if r.owned {
			owner = userID
		}
		var id string
		err := conn.QueryRow(ctx, `
			INSERT INTO recipes (title, cuisine, ingredients, instructions, created_by)
			VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
			RETURNING id
		`, r.title, r.cuisine, r.ingredients, r.instructions, owner).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed recipe %q: %v", r.title, err)
		}
		fmt.Printf("seeded recipe: id=%s title=%s\n", id, r.title)
	}
}
