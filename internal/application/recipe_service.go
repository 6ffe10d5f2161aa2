package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/recipehub/recipehub/internal/domain/entity"
	repo "github.com/recipehub/recipehub/internal/domain/repository"
	"github.com/recipehub/recipehub/internal/imagestore"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotOwner       = errors.New("not the recipe owner")
	ErrMissingFields  = errors.New("missing required fields")
)

// RecipeService implements the recipe resource operations. Elasticsearch is
// optional; when nil, indexing is skipped and search returns no hits.
type RecipeService struct {
	Repo           repo.RecipeRepository
	Images         imagestore.Store
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESRecipesIndex string
}

func NewRecipeService(r repo.RecipeRepository, images imagestore.Store, logger *logrus.Logger, es *elasticsearch.Client, esRecipesIndex string) *RecipeService {
	return &RecipeService{
		Repo:           r,
		Images:         images,
		Logger:         logger,
		ES:             es,
		ESRecipesIndex: esRecipesIndex,
	}
}

// RecipeInput carries the mutable recipe fields plus an optional image payload.
type RecipeInput struct {
	Title        string
	Cuisine      string
	Ingredients  []string
	Instructions []string
	Image        *ImageUpload
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Validate checks presence of the required fields. Sequences must be non-empty
// and may not contain blank lines.
func (in *RecipeInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Cuisine) == "" {
		return ErrMissingFields
	}
	for _, seq := range [][]string{in.Ingredients, in.Instructions} {
		if len(seq) == 0 {
			return ErrMissingFields
		}
		for _, line := range seq {
			if strings.TrimSpace(line) == "" {
				return ErrMissingFields
			}
		}
	}
	return nil
}

// isOwner is the single authorization rule of the system. A record with no
// owner (seeded outside user action) matches nobody.
func isOwner(r *entity.Recipe, identity string) bool {
	return r.CreatedBy != "" && r.CreatedBy == identity
}

func (s *RecipeService) List(ctx context.Context) ([]entity.RecipeWithOwner, error) {
	return s.Repo.List(ctx)
}

func (s *RecipeService) Get(ctx context.Context, id string) (*entity.RecipeWithOwner, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// Create persists an optional image then the record. The two writes are not
// transactional; when the record write fails the just-written image is removed
// best effort.
func (s *RecipeService) Create(ctx context.Context, in RecipeInput, owner string) (*entity.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	imageURL, imageRef, err := s.saveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	rec := &entity.Recipe{
		Title:        in.Title,
		Cuisine:      in.Cuisine,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		ImageURL:     imageURL,
		CreatedBy:    owner,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		s.removeImage(ctx, imageRef)
		return nil, err
	}
	s.indexRecipe(ctx, rec)
	return rec, nil
}

// Update replaces the mutable fields wholesale. The existing image URL is kept
// unless a new payload arrives. Checks run in order: not-found, then ownership,
// then field validation, so a non-owner never learns whether a body was valid.
func (s *RecipeService) Update(ctx context.Context, id string, in RecipeInput, caller string) (*entity.Recipe, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(&existing.Recipe, caller) {
		return nil, ErrNotOwner
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	imageRef := ""
	if in.Image != nil {
		imageURL, imageRef, err = s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
	}

	rec := &entity.Recipe{
		ID:           existing.ID,
		Title:        in.Title,
		Cuisine:      in.Cuisine,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		ImageURL:     imageURL,
		CreatedBy:    existing.CreatedBy,
		CreatedAt:    existing.CreatedAt,
	}
	if err := s.Repo.Update(ctx, rec); err != nil {
		s.removeImage(ctx, imageRef)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	s.indexRecipe(ctx, rec)
	return rec, nil
}

// Delete removes the record permanently. The referenced image file is left
// behind; cleanup of orphaned images is out of scope.
func (s *RecipeService) Delete(ctx context.Context, id string, caller string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isOwner(&existing.Recipe, caller) {
		return ErrNotOwner
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	s.deindexRecipe(ctx, id)
	return nil
}

func (s *RecipeService) saveImage(ctx context.Context, img *ImageUpload) (url, ref string, err error) {
	if img == nil {
		return "", "", nil
	}
	url, ref, err = s.Images.Save(ctx, img.Filename, img.ContentType, img.Data)
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).Error("image write failed")
	}
	return url, ref, err
}

func (s *RecipeService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.Images.Remove(ctx, ref); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("ref", ref).Warn("orphaned image cleanup failed")
	}
}

func (s *RecipeService) indexRecipe(ctx context.Context, rec *entity.Recipe) {
	if s.ES == nil || s.ESRecipesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           rec.ID,
		"title":        rec.Title,
		"cuisine":      rec.Cuisine,
		"ingredients":  rec.Ingredients,
		"instructions": rec.Instructions,
		"image_url":    rec.ImageURL,
		"created_by":   rec.CreatedBy,
		"created_at":   rec.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESRecipesIndex, DocumentID: rec.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("recipe_id", rec.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("recipe_id", rec.ID).Warn("es index response error")
	}
}

func (s *RecipeService) deindexRecipe(ctx context.Context, id string) {
	if s.ES == nil || s.ESRecipesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESRecipesIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("recipe_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on title, cuisine, and ingredients.
func (s *RecipeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESRecipesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "cuisine", "ingredients"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESRecipesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
