package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/recipehub/recipehub/internal/interface/http"
	"github.com/recipehub/recipehub/internal/interface/middleware"
	"github.com/recipehub/recipehub/pkg/helpers"
)

// RecipeModule wires recipe HTTP handlers into routes.
// Public: GET /api/recipes, GET /api/recipes/search, GET /api/recipes/:id,
// GET /api/cuisines
// Protected: POST /api/recipes, PUT /api/recipes/:id, DELETE /api/recipes/:id
type RecipeModule struct {
	Handler *handlers.RecipeHandler
	JWT     *helpers.JWTManager
}

func NewRecipeModule(h *handlers.RecipeHandler, jwt *helpers.JWTManager) *RecipeModule {
	return &RecipeModule{Handler: h, JWT: jwt}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/recipes", m.Handler.List)
	rg.GET("/recipes/search", m.Handler.Search)
	rg.GET("/recipes/:id", m.Handler.Get)
	rg.GET("/cuisines", m.Handler.Cuisines)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/recipes", m.Handler.Create)
		auth.PUT("/recipes/:id", m.Handler.Update)
		auth.DELETE("/recipes/:id", m.Handler.Delete)
	}
}
