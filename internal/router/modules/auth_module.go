package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/recipehub/recipehub/internal/interface/http"
	"github.com/recipehub/recipehub/internal/interface/middleware"
	"github.com/recipehub/recipehub/pkg/helpers"
)

// AuthModule wires registration, login, and profile routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/me", m.Handler.Me)
	}
}
