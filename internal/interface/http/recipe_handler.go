package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/recipehub/recipehub/internal/application"
	"github.com/recipehub/recipehub/internal/domain/entity"
	"github.com/recipehub/recipehub/internal/interface/middleware"
	"github.com/recipehub/recipehub/pkg/response"
)

type RecipeHandler struct {
	Svc    *application.RecipeService
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *application.RecipeService, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger}
}

func recipeJSON(r *entity.Recipe, ownerEmail string) gin.H {
	return gin.H{
		"id":           r.ID,
		"title":        r.Title,
		"cuisine":      r.Cuisine,
		"ingredients":  r.Ingredients,
		"instructions": r.Instructions,
		"imageUrl":     r.ImageURL,
		"createdBy":    gin.H{"id": r.CreatedBy, "email": ownerEmail},
		"createdAt":    r.CreatedAt,
	}
}

// List GET /api/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list recipes failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	out := make([]gin.H, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipeJSON(&recipes[i].Recipe, recipes[i].OwnerEmail))
	}
	response.Success(c, http.StatusOK, out, "recipes", nil)
}

// Get GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrRecipeNotFound) {
			response.Error[any](c, http.StatusNotFound, "recipe not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get recipe failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, recipeJSON(&rec.Recipe, rec.OwnerEmail), "recipe", nil)
}

// bindRecipeForm reads the multipart body shared by Create and Update:
// title and cuisine as plain fields, ingredients and instructions as JSON
// arrays, and an optional image file.
func bindRecipeForm(c *gin.Context) (application.RecipeInput, error) {
	var in application.RecipeInput
	in.Title = c.PostForm("title")
	in.Cuisine = c.PostForm("cuisine")

	if raw := c.PostForm("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Ingredients); err != nil {
			return in, errors.New("ingredients must be a JSON array")
		}
	}
	if raw := c.PostForm("instructions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Instructions); err != nil {
			return in, errors.New("instructions must be a JSON array")
		}
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return in, err
		}
		// Closed by the request lifecycle; the service consumes it before the
		// handler returns.
		in.Image = &application.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        f,
		}
	}
	return in, nil
}

// Create POST /api/recipes (auth required)
func (h *RecipeHandler) Create(c *gin.Context) {
	in, err := bindRecipeForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	owner := c.GetString(middleware.CtxUserIDKey)

	rec, err := h.Svc.Create(c.Request.Context(), in, owner)
	if err != nil {
		if errors.Is(err, application.ErrMissingFields) {
			response.Error[any](c, http.StatusBadRequest, "missing required fields", nil)
			return
		}
		h.Logger.WithError(err).Error("create recipe failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, recipeJSON(rec, c.GetString(middleware.CtxUserEmailKey)), "recipe created", nil)
}

// Update PUT /api/recipes/:id (auth required, owner only)
func (h *RecipeHandler) Update(c *gin.Context) {
	in, err := bindRecipeForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	caller := c.GetString(middleware.CtxUserIDKey)

	rec, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, caller)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMissingFields):
			response.Error[any](c, http.StatusBadRequest, "missing required fields", nil)
		case errors.Is(err, application.ErrRecipeNotFound):
			response.Error[any](c, http.StatusNotFound, "recipe not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error[any](c, http.StatusForbidden, "not the recipe owner", nil)
		default:
			h.Logger.WithError(err).Error("update recipe failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, recipeJSON(rec, c.GetString(middleware.CtxUserEmailKey)), "recipe updated", nil)
}

// Delete DELETE /api/recipes/:id (auth required, owner only)
func (h *RecipeHandler) Delete(c *gin.Context) {
	caller := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		switch {
		case errors.Is(err, application.ErrRecipeNotFound):
			response.Error[any](c, http.StatusNotFound, "recipe not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error[any](c, http.StatusForbidden, "not the recipe owner", nil)
		default:
			h.Logger.WithError(err).Error("delete recipe failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "recipe deleted", nil)
}

// Cuisines GET /api/cuisines
// Advisory list for pre-filling the recipe form; writes accept any value.
func (h *RecipeHandler) Cuisines(c *gin.Context) {
	response.Success(c, http.StatusOK, entity.Cuisines, "cuisines", nil)
}

// Search GET /api/recipes/search?q=
func (h *RecipeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	hits, err := h.Svc.Search(c.Request.Context(), q, 0)
	if err != nil {
		h.Logger.WithError(err).Warn("recipe search failed")
		response.Success(c, http.StatusOK, []map[string]any{}, "recipes", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "recipes", nil)
}
