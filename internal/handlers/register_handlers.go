package handlers

import (
	"embed"
	"html/template"

	"github.com/SscSPs/gallery_app/cmd/docs"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// authLimit guards the credential endpoints.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authLimit gin.HandlerFunc,
) {
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	// Add health check route
	r.GET("/health", getHealth)

	// Static /auth segments take priority over /auth/:provider in gin's tree
	registerAuthRoutes(r, NewAuthHandler(services, cfg), authLimit)
	registerOAuthRoutes(r, NewOAuthHandler(services.OAuth, services.Session, cfg.SuccessRedirect))

	registerAdminRoutes(r, services.User)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
