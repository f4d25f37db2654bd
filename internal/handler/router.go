package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mergington-activities-api/internal/middleware"
)

// Routes bundles the handlers and guards mounted by RegisterRoutes.
type Routes struct {
	Prefix       string
	Activities   *ActivityHandler
	Auth         *AuthHandler
	Metrics      *MetricsHandler
	Tokens       middleware.TokenValidator
	LoginLimiter gin.HandlerFunc
	// ExposeMetrics mounts /metrics when true.
	ExposeMetrics bool
}

// RegisterRoutes mounts the public catalog, the teacher-only roster routes and the ops endpoints.
func RegisterRoutes(r *gin.Engine, routes Routes) {
	if routes.Metrics != nil {
		r.GET("/health", routes.Metrics.Health)
		r.GET("/ready", routes.Metrics.Ready)
		if routes.ExposeMetrics {
			r.GET("/metrics", routes.Metrics.Prometheus)
		}
	}

	api := r.Group(routes.Prefix)
	api.Use(middleware.WithResponseMeta())

	requireTeacher := middleware.JWT(routes.Tokens)

	auth := api.Group("/auth")
	login := []gin.HandlerFunc{routes.Auth.Login}
	if routes.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{routes.LoginLimiter}, login...)
	}
	auth.POST("/login", login...)
	auth.GET("/me", requireTeacher, routes.Auth.Me)

	activities := api.Group("/activities")
	activities.GET("", routes.Activities.List)
	activities.GET("/days", routes.Activities.Days)
	activities.GET("/:name", routes.Activities.Get)

	roster := activities.Group("/:name", requireTeacher)
	roster.POST("/signup", routes.Activities.Signup)
	roster.POST("/withdraw", routes.Activities.Withdraw)
	roster.POST("/unregister", routes.Activities.Withdraw)
	roster.GET("/roster", routes.Activities.Roster)
}
