package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/recipehub/recipehub/internal/interface/http"
	"github.com/recipehub/recipehub/internal/interface/middleware"
	"github.com/recipehub/recipehub/pkg/helpers"
)

// IntegrationModule wires the external content adapter routes. The OAuth
// handshake endpoints are public: the popup completes before the user is
// necessarily logged in.
type IntegrationModule struct {
	Handler *handlers.IntegrationHandler
	JWT     *helpers.JWTManager
}

func NewIntegrationModule(h *handlers.IntegrationHandler, jwt *helpers.JWTManager) *IntegrationModule {
	return &IntegrationModule{Handler: h, JWT: jwt}
}

func (m *IntegrationModule) Register(rg *gin.RouterGroup) {
	rg.GET("/photos/auth", m.Handler.PhotosAuthURL)
	rg.POST("/photos/token", m.Handler.PhotosToken)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/lookup", m.Handler.LookupRecipe)
		auth.POST("/photos/search", m.Handler.PhotosSearch)
	}
}
