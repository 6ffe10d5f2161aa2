package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/recipehub/recipehub/internal/integration"
	"github.com/recipehub/recipehub/pkg/response"
	"github.com/recipehub/recipehub/pkg/validation"
)

// IntegrationHandler exposes the external content adapters: generative recipe
// lookup and photo-library search. Either adapter may be nil when its
// credentials are not configured.
type IntegrationHandler struct {
	Lookup integration.RecipeLookup
	Photos integration.PhotoLibrary
	Logger *logrus.Logger
}

func NewIntegrationHandler(lookup integration.RecipeLookup, photos integration.PhotoLibrary, logger *logrus.Logger) *IntegrationHandler {
	return &IntegrationHandler{Lookup: lookup, Photos: photos, Logger: logger}
}

type lookupRequest struct {
	DishName string `json:"dishName" binding:"required"`
}

// LookupRecipe POST /api/lookup (auth required)
func (h *IntegrationHandler) LookupRecipe(c *gin.Context) {
	if h.Lookup == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "recipe lookup not configured", nil)
		return
	}
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	guess, err := h.Lookup.Lookup(c.Request.Context(), req.DishName)
	if err != nil {
		h.Logger.WithError(err).Warn("recipe lookup failed")
		response.Error[any](c, http.StatusBadGateway, "failed to search for recipe", nil)
		return
	}
	response.Success(c, http.StatusOK, guess, "recipe suggestion", nil)
}

// PhotosAuthURL GET /api/photos/auth
func (h *IntegrationHandler) PhotosAuthURL(c *gin.Context) {
	if h.Photos == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "photo library not configured", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"authUrl": h.Photos.AuthURL()}, "auth url", nil)
}

type photosTokenRequest struct {
	Code string `json:"code" binding:"required"`
}

// PhotosToken POST /api/photos/token
func (h *IntegrationHandler) PhotosToken(c *gin.Context) {
	if h.Photos == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "photo library not configured", nil)
		return
	}
	var req photosTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tokens, err := h.Photos.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		h.Logger.WithError(err).Warn("photos token exchange failed")
		response.Error[any](c, http.StatusBadGateway, "failed to authenticate with photo library", nil)
		return
	}
	response.Success(c, http.StatusOK, tokens, "tokens", nil)
}

type photosSearchRequest struct {
	Query       string `json:"query" binding:"required"`
	AccessToken string `json:"accessToken" binding:"required"`
}

// PhotosSearch POST /api/photos/search (auth required)
func (h *IntegrationHandler) PhotosSearch(c *gin.Context) {
	if h.Photos == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "photo library not configured", nil)
		return
	}
	var req photosSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	photos, err := h.Photos.Search(c.Request.Context(), req.Query, req.AccessToken)
	if err != nil {
		h.Logger.WithError(err).Warn("photos search failed")
		response.Error[any](c, http.StatusBadGateway, "failed to search photo library", nil)
		return
	}
	response.Success(c, http.StatusOK, photos, "photos", nil)
}
