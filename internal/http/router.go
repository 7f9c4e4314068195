package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/internal/http/handlers"
	"github.com/you/bookstore/internal/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Routes bundles everything BuildRouter mounts
type Routes struct {
	Auth        *handlers.AuthHandlers
	Catalog     *handlers.CatalogHandlers
	Admin       *handlers.AdminHandlers
	Policies    *handlers.PolicyHandlers
	JWT         *middleware.AuthMW
	Casbin      *middleware.CasbinMW
	Logger      *zap.Logger
	ServiceName string
}

// BuildRouter wires the public, reader and admin route groups
func BuildRouter(rt Routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(rt.Logger))
	if rt.ServiceName != "" {
		r.Use(otelgin.Middleware(rt.ServiceName))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.POST("/signup", rt.Auth.Signup)
	api.POST("/login/email", rt.Auth.LoginWithEmail)
	api.POST("/login/phone/send-otp", rt.Auth.SendOTP)
	api.POST("/login/phone/verify-otp", rt.Auth.VerifyOTPAndLogin)

	api.GET("/books", rt.Catalog.ListBooks)
	api.GET("/getFreeBooks", rt.Catalog.ListFreeBooks)
	api.GET("/categories", rt.Catalog.ListCategories)
	api.GET("/books/:bookId", rt.Catalog.GetBook)
	api.POST("/purchase", rt.Catalog.Purchase)

	v := api.Group("/").Use(rt.JWT.WithJWT(), rt.Casbin.Enforce())
	v.GET("/me", rt.Auth.Me)
	v.POST("/logout", rt.Auth.Logout)
	v.GET("/profile/:userId", rt.Auth.Profile)
	v.GET("/getCollection/:userId", rt.Catalog.ListCollections)
	v.POST("/addNewCollection", rt.Catalog.AddCollection)

	adm := r.Group("/admin").Use(rt.JWT.WithJWT(), rt.Casbin.Enforce())
	adm.GET("/books", rt.Admin.ListBooks)
	adm.POST("/books", rt.Admin.AddBook)
	adm.GET("/books/:bookId", rt.Admin.GetBook)
	adm.PUT("/books/:bookId", rt.Admin.UpdateBook)
	adm.DELETE("/books/:bookId", rt.Admin.DeleteBook)
	adm.GET("/policies", rt.Policies.List)
	adm.POST("/policies", rt.Policies.Add)
	adm.DELETE("/policies", rt.Policies.Remove)

	return r
}
