package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipeTextSections(t *testing.T) {
	text := `Title: Pad Thai
Cuisine: Thai

Ingredients:
- 200g rice noodles
- 2 tbsp tamarind paste
- 1 egg

Instructions:
1. Soak the noodles in warm water.
2. Stir-fry everything over high heat.`

	guess := ParseRecipeText(text, "Pad Thai")
	assert.Equal(t, "Pad Thai", guess.Title)
	assert.Equal(t, "Thai", guess.Cuisine)
	assert.Equal(t, []string{"- 200g rice noodles", "- 2 tbsp tamarind paste", "- 1 egg"}, guess.Ingredients)
	assert.Equal(t, []string{"1. Soak the noodles in warm water.", "2. Stir-fry everything over high heat."}, guess.Instructions)
}

func TestParseRecipeTextDirectionsMarker(t *testing.T) {
	text := `Type: Italian
Ingredients:
pasta
garlic
Directions:
boil
toss`

	guess := ParseRecipeText(text, "Aglio e Olio")
	assert.Equal(t, "Italian", guess.Cuisine)
	assert.Equal(t, []string{"pasta", "garlic"}, guess.Ingredients)
	assert.Equal(t, []string{"boil", "toss"}, guess.Instructions)
}

func TestParseRecipeTextGarbage(t *testing.T) {
	guess := ParseRecipeText("I am sorry, I cannot help with that.", "Mystery Dish")
	assert.Equal(t, "Mystery Dish", guess.Title)
	assert.Equal(t, "International", guess.Cuisine)
	assert.Empty(t, guess.Ingredients)
	assert.Empty(t, guess.Instructions)
}

func TestParseRecipeTextEmptyCuisineKeepsDefault(t *testing.T) {
	guess := ParseRecipeText("Cuisine:\nIngredients:\nsalt", "Salted Thing")
	assert.Equal(t, "International", guess.Cuisine)
	assert.Equal(t, []string{"salt"}, guess.Ingredients)
}

func TestLookupCacheKeyNormalizes(t *testing.T) {
	assert.Equal(t, "lookup:recipe:pad thai", lookupCacheKey("  Pad Thai "))
}
