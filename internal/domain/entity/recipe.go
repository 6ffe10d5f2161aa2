package entity

import "time"

// Recipe is the aggregate root for the recipe domain.
// Ingredients and Instructions are ordered lines; order is meaningful and
// preserved through storage.
type Recipe struct {
	ID           string
	Title        string
	Cuisine      string
	Ingredients  []string
	Instructions []string
	ImageURL     string
	CreatedBy    string // owning user id; empty for records seeded outside user action
	CreatedAt    time.Time
}

// RecipeWithOwner is a Recipe enriched with the owning user's email for
// read responses. No other user fields leak through.
type RecipeWithOwner struct {
	Recipe
	OwnerEmail string
}

// Cuisines mirrors the cuisine choices offered by the web client. The list is
// advisory: any non-empty cuisine is accepted on write.
var Cuisines = []string{
	"Italian", "Mexican", "Chinese", "Indian", "Japanese", "Thai", "French",
	"Mediterranean", "American", "Korean", "Vietnamese", "Greek", "Spanish",
	"Middle Eastern", "African", "Caribbean", "Latin American", "European",
	"Asian", "International",
}
