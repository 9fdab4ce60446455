package router

import (
	"net/http"

	"creava/config"
	"creava/controllers"
	"creava/logger"
	"creava/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: one public health probe,
// then everything behind the identity provider's token.
func Initialize(r *gin.Engine, cfg config.Configuration, log *logger.Logger) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is live")
	})

	api := r.Group("/api")

	// Authenticated routes (identity-provider token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired(cfg.Security.JwtSecret))

	ai := auth.Group("/ai")
	ai.POST("/generate-article", Logger(log), controllers.GenerateArticle)
	ai.POST("/generate-blog-title", Logger(log), controllers.GenerateBlogTitle)
	ai.POST("/generate-image", Logger(log), controllers.GenerateImage)
	ai.POST("/remove-image-background", Logger(log), controllers.RemoveImageBackground)
	ai.POST("/remove-image-object", Logger(log), controllers.RemoveImageObject)
	ai.POST("/resume-review", Logger(log), controllers.ResumeReview)

	user := auth.Group("/user")
	user.GET("/get-user-creations", Logger(log), controllers.GetUserCreations)
	user.GET("/get-published-creations", Logger(log), controllers.GetPublishedCreations)
	user.POST("/toggle-like-creations", Logger(log), controllers.ToggleLikeCreations)

	log.Info("routes initialized")
}
