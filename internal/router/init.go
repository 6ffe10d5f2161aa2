package router

import (
	"github.com/recipehub/recipehub/internal/application"
	"github.com/recipehub/recipehub/internal/container"
	pginfra "github.com/recipehub/recipehub/internal/infrastructure/postgres"
	handlers "github.com/recipehub/recipehub/internal/interface/http"
	"github.com/recipehub/recipehub/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	recipeRepo := pginfra.NewRecipeRepository(container.GetPGPool())
	userRepo := pginfra.NewUserRepository(container.GetPGPool())

	recipeSvc := application.NewRecipeService(
		recipeRepo,
		container.GetImages(),
		logger,
		container.GetES(),
		cfg.ESRecipesIndex,
	)
	authSvc := application.NewAuthService(userRepo, jwt, container.GetRabbitPub(), logger)

	recipeHandler := handlers.NewRecipeHandler(recipeSvc, logger)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	integrationHandler := handlers.NewIntegrationHandler(
		container.GetRecipeLookup(),
		container.GetPhotoLibrary(),
		logger,
	)

	r.Add(modules.NewRecipeModule(recipeHandler, jwt))
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewIntegrationModule(integrationHandler, jwt))
}
