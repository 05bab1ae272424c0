package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Akashdhk/Housemate/internal/di"
	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/pkg/middleware"
)

// Config holds router configuration
type Config struct {
	JWTSecret   string
	AuditLogger *middleware.AuditLogger
	RateLimit   middleware.RateLimitConfig
}

// New builds the gin engine with all routes and middleware wired
func New(c *di.Container, cfg *Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	// Probes sit outside auth, audit and rate limiting
	r.GET("/health", c.HealthHandler.Health)
	r.GET("/ready", c.HealthHandler.Ready)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg.RateLimit))
	if cfg.AuditLogger != nil {
		api.Use(middleware.AuditMiddleware(cfg.AuditLogger))
	}

	auth := api.Group("/auth")
	{
		// Credential endpoints get a tighter bucket on top of the global one
		login := middleware.RateLimiter(middleware.LoginRateLimitConfig())
		auth.POST("/register", login, c.AuthHandler.Register)
		auth.POST("/login", login, c.AuthHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWTSecret}))
	{
		protected.GET("/auth/me", c.AuthHandler.Me)

		flats := protected.Group("/flats")
		{
			flats.GET("", c.FlatHandler.List)
			flats.GET("/:id", c.FlatHandler.Get)
			flats.POST("", middleware.RequireRole(string(domain.RoleOwner)), c.FlatHandler.Create)
			flats.PUT("/:id/tenant", middleware.RequireRole(string(domain.RoleOwner)), c.FlatHandler.AssignTenant)
		}

		bills := protected.Group("/bills")
		{
			bills.GET("", c.BillHandler.List)
			bills.POST("", middleware.RequireRole(string(domain.RoleOwner)), c.BillHandler.Create)
			bills.POST("/:id/pay", middleware.RequireRole(string(domain.RoleTenant)), c.BillHandler.Pay)
		}

		tickets := protected.Group("/tickets")
		{
			tickets.GET("", c.TicketHandler.List)
			tickets.POST("", c.TicketHandler.Create)
			tickets.PATCH("/:id/status", middleware.RequireRole(string(domain.RoleOwner)), c.TicketHandler.Advance)
		}

		protected.GET("/dashboard", c.DashboardHandler.Summary)
	}

	return r
}
