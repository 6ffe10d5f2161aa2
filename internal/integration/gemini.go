// Package integration holds the external-service adapters: the generative
// recipe lookup and the photo library. Both are opaque, best-effort
// collaborators; their results are pre-fill suggestions, not validated data.
package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/recipehub/recipehub/pkg/helpers"
)

// RecipeGuess is a best-effort structured guess at a recipe. Any field may be
// empty when the upstream text does not match the expected shape.
type RecipeGuess struct {
	Title        string   `json:"title"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// RecipeLookup asks a generative text service for a recipe by dish name.
type RecipeLookup interface {
	Lookup(ctx context.Context, dishName string) (*RecipeGuess, error)
}

// GeminiLookup implements RecipeLookup against the Gemini API. Results are
// cached in Redis by normalized dish name when a client is configured.
type GeminiLookup struct {
	client   *genai.Client
	model    string
	rdb      *redis.Client
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewGeminiLookup(ctx context.Context, apiKey, model string, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) (*GeminiLookup, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiLookup{client: client, model: model, rdb: rdb, cacheTTL: cacheTTL, logger: logger}, nil
}

func lookupCacheKey(dishName string) string {
	return "lookup:recipe:" + strings.ToLower(strings.TrimSpace(dishName))
}

func (g *GeminiLookup) Lookup(ctx context.Context, dishName string) (*RecipeGuess, error) {
	if g.rdb != nil {
		var cached RecipeGuess
		if ok, err := helpers.RedisGetJSON(ctx, g.rdb, lookupCacheKey(dishName), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	prompt := fmt.Sprintf(`Please provide a detailed recipe for %q. Include the following format:
- Title: [Dish Name]
- Cuisine: [Type of cuisine]
- Ingredients: [List of ingredients with measurements]
- Instructions: [Step-by-step cooking instructions]

Make sure the recipe is practical and includes proper measurements and cooking times.`, dishName)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate recipe: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, errors.New("empty response from generative service")
	}

	guess := ParseRecipeText(text, dishName)

	if g.rdb != nil {
		if err := helpers.RedisSetJSON(ctx, g.rdb, lookupCacheKey(dishName), guess, g.cacheTTL); err != nil && g.logger != nil {
			g.logger.WithError(err).Warn("lookup cache write failed")
		}
	}
	return guess, nil
}

// ParseRecipeText splits free text into recipe fields on line-based section
// markers. Best effort: unexpected text yields possibly empty lists.
func ParseRecipeText(text, dishName string) *RecipeGuess {
	guess := &RecipeGuess{
		Title:        dishName,
		Cuisine:      "International",
		Ingredients:  []string{},
		Instructions: []string{},
	}

	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "cuisine:") || strings.Contains(lower, "type:"):
			if _, after, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(after) != "" {
				guess.Cuisine = strings.TrimSpace(after)
			}
		case strings.Contains(lower, "ingredients:") || strings.Contains(lower, "ingredient:"):
			section = "ingredients"
		case strings.Contains(lower, "instructions:") || strings.Contains(lower, "directions:") || strings.Contains(lower, "steps:"):
			section = "instructions"
		case section == "ingredients" && !strings.Contains(lower, "ingredients"):
			guess.Ingredients = append(guess.Ingredients, line)
		case section == "instructions" && !strings.Contains(lower, "instructions"):
			guess.Instructions = append(guess.Instructions, line)
		}
	}
	return guess
}

var _ RecipeLookup = (*GeminiLookup)(nil)
