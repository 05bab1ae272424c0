package di

import (
	"time"

	"github.com/Akashdhk/Housemate/internal/handler"
	"github.com/Akashdhk/Housemate/internal/repository"
	"github.com/Akashdhk/Housemate/internal/service"
	"github.com/Akashdhk/Housemate/pkg/database"
	pkgredis "github.com/Akashdhk/Housemate/pkg/redis"
)

// Container holds all dependencies for the application
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *pkgredis.Client

	// Repositories
	UserRepo   repository.UserRepository
	FlatRepo   repository.FlatRepository
	BillRepo   repository.BillRepository
	TicketRepo repository.TicketRepository

	// Services
	AuthService      service.AuthService
	FlatService      service.FlatService
	BillService      service.BillService
	TicketService    service.TicketService
	DashboardService service.DashboardService

	// Handlers
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	FlatHandler      *handler.FlatHandler
	BillHandler      *handler.BillHandler
	TicketHandler    *handler.TicketHandler
	DashboardHandler *handler.DashboardHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *pkgredis.Client
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())
	c.FlatRepo = repository.NewPostgresFlatRepository(c.DB.Pool())
	c.BillRepo = repository.NewPostgresBillRepository(c.DB.Pool())
	c.TicketRepo = repository.NewPostgresTicketRepository(c.DB.Pool())

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.JWTSecret, cfg.AccessTokenTTL)
	c.FlatService = service.NewFlatService(c.FlatRepo, c.UserRepo)
	c.BillService = service.NewBillService(c.BillRepo, c.FlatRepo)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.FlatRepo)
	c.DashboardService = service.NewDashboardService(c.FlatRepo, c.BillRepo, c.TicketRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.FlatHandler = handler.NewFlatHandler(c.FlatService, c.AuthService)
	c.BillHandler = handler.NewBillHandler(c.BillService, c.AuthService)
	c.TicketHandler = handler.NewTicketHandler(c.TicketService, c.AuthService)
	c.DashboardHandler = handler.NewDashboardHandler(c.DashboardService, c.AuthService)

	return c
}
