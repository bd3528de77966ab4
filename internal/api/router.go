package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peoplecore/hr-workforce/docs"
	"github.com/peoplecore/hr-workforce/internal/api/handler"
	"github.com/peoplecore/hr-workforce/internal/api/middleware"
	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
	"github.com/peoplecore/hr-workforce/internal/infrastructure/config"
)

// Dependencies carries everything the router needs. Services are constructed
// in main so the outbox dispatcher can share the same instances.
type Dependencies struct {
	Config *config.Config
	Log    zerolog.Logger
	Mongo  *mongo.Database
	Redis  *redis.Client

	AuthService         ports.AuthService
	EmployeeService     ports.EmployeeService
	VerificationService ports.VerificationService
	RoleService         ports.RoleService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hr"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService)
	verificationHandler := handler.NewVerificationHandler(deps.VerificationService, deps.EmployeeService)
	roleHandler := handler.NewRoleHandler(deps.RoleService)
	internalHandler := handler.NewInternalHandler(deps.EmployeeService)

	authRequired := middleware.Auth(deps.Config.JWT.Secret, deps.Config.JWT.Audience, deps.Config.JWT.Issuer)
	adminOnly := middleware.RequireRoles(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Employee routes ---
	v1 := e.Group("/v1", authRequired)
	v1.POST("/employees", employeeHandler.Create, adminOnly)
	v1.GET("/employees", employeeHandler.List)
	v1.GET("/employees/:id", employeeHandler.Get)
	v1.POST("/employees/:id/deactivate", employeeHandler.Deactivate, adminOnly)
	v1.PUT("/employees/:id/manager", employeeHandler.ChangeManager, adminOnly)

	// --- Verification routes ---
	// Submit is open to any authenticated user; the service allows only the
	// profile owner or an admin. Reviewer transitions are admin-gated here
	// and re-checked in the service.
	v1.GET("/employees/:id/verification", verificationHandler.Status)
	v1.POST("/employees/:id/verification/submit", verificationHandler.Submit)
	v1.POST("/employees/:id/verification/advance", verificationHandler.Advance, adminOnly)
	v1.POST("/employees/:id/verification/reject", verificationHandler.Reject, adminOnly)
	v1.POST("/employees/:id/verification/approve", verificationHandler.Approve, adminOnly)

	// --- Role routes (admin only) ---
	v1.POST("/users/:user_id/roles", roleHandler.Assign, adminOnly)
	v1.GET("/users/:user_id/roles", roleHandler.List, adminOnly)
	v1.DELETE("/users/:user_id/roles/:role_code", roleHandler.Revoke, adminOnly)

	// --- Internal service-to-service routes ---
	internal := e.Group("/internal/v1", middleware.ServiceAuth(deps.Config.Internal.ServiceTokens))
	internal.GET("/users/:user_id/verification-status", internalHandler.VerificationStatus)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
