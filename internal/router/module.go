package router

import "github.com/gin-gonic/gin"

// Module is one feature area (recipes, auth, integrations) that knows how to
// mount its own routes under the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
