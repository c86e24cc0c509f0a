package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"aurora/internal/access"
	"aurora/internal/api/controllers"
	"aurora/internal/config"
	"aurora/pkg/middleware"
	"aurora/pkg/utils"
)

type RouteParams struct {
	fx.In

	Config  *config.Config
	Log     *zap.Logger
	Tokens  *utils.TokenIssuer
	Gateway *access.Gateway

	Accounts     *controllers.AccountController
	Products     *controllers.ProductController
	Images       *controllers.ImageController
	Appointments *controllers.AppointmentController
	Health       *controllers.HealthController
}

// NewRouter builds the engine with the global middleware chain and every route.
func NewRouter(p RouteParams) *gin.Engine {
	gin.SetMode(p.Config.GinMode)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.ZapLogger(p.Log))
	r.Use(middleware.Recovery())
	r.Use(middleware.CorsMiddleware(p.Config.CORSAllowedOrigins))
	r.Use(middleware.JWTAuthMiddleware(p.Tokens, p.Config.Admin.BearerToken))

	RegisterRoutes(r, p)

	if p.Config.Storage.Driver == "local" {
		r.Static(mediaPrefix(p.Config.Storage.MediaURL), p.Config.Storage.MediaRoot)
	}

	return r
}

func mediaPrefix(mediaURL string) string {
	prefix := "/" + strings.Trim(mediaURL, "/")
	if prefix == "/" {
		return "/media"
	}
	return prefix
}

func RegisterRoutes(r *gin.Engine, p RouteParams) {
	catalogWrite := middleware.AuthzMiddleware(p.Gateway, access.ResourceCatalog, access.ActionWrite)

	r.GET("/test", p.Health.Test)

	users := r.Group("/users")
	users.POST("/register", p.Accounts.Register)
	users.POST("/token", p.Accounts.Login)
	users.POST("/token/refresh", p.Accounts.RefreshToken)
	users.POST("/create-admin", p.Accounts.CreateAdmin)
	users.GET("", p.Accounts.ListAccounts)
	users.GET("/:id", p.Accounts.GetAccount)
	users.PUT("/:id", p.Accounts.UpdateAccount)
	users.DELETE("/:id", p.Accounts.DeleteAccount)

	products := r.Group("/products")
	products.GET("", p.Products.ListProducts)
	products.GET("/:id", p.Products.GetProduct)
	products.POST("", catalogWrite, p.Products.CreateProduct)
	products.PUT("/:id", catalogWrite, p.Products.UpdateProduct)
	products.DELETE("/:id", catalogWrite, p.Products.DeleteProduct)
	products.POST("/:id/image", catalogWrite, p.Products.UploadProductImage)

	images := r.Group("/images", middleware.RequireAuth())
	images.POST("", p.Images.UploadImage)
	images.GET("", p.Images.ListImages)
	images.GET("/:id", p.Images.GetImage)
	images.DELETE("/:id", p.Images.DeleteImage)
	images.POST("/:id/analyze", p.Images.AnalyzeImage)

	appointments := r.Group("/appointments", middleware.RequireAuth())
	appointments.POST("", p.Appointments.CreateAppointment)
	appointments.GET("", p.Appointments.ListAppointments)
	appointments.GET("/:id", p.Appointments.GetAppointment)
	appointments.PUT("/:id", p.Appointments.UpdateAppointment)
	appointments.DELETE("/:id", p.Appointments.DeleteAppointment)
}
