package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/authz"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/logging"
	"taskhub/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	milestoneHandler *handler.MilestoneHandler,
	employeeHandler *handler.EmployeeHandler,
	skillHandler *handler.SkillHandler,
) {
	e.Use(logging.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: JWT in the session cookie, then blacklist + actor resolution
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + handler.TokenCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), resolveActor(tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/verify", authHandler.Verify)

	// Project routes
	secured.POST("/projects", projectHandler.Create)
	secured.GET("/projects", projectHandler.List)
	secured.GET("/projects/:id", projectHandler.Get)
	secured.PUT("/projects/:id", projectHandler.Update)
	secured.DELETE("/projects/:id", projectHandler.Delete)

	// Task routes
	secured.POST("/projects/:id/tasks", taskHandler.Create)
	secured.GET("/projects/:id/tasks", taskHandler.ListByProject)
	secured.GET("/tasks/:taskId", taskHandler.Get)
	secured.PUT("/tasks/:taskId", taskHandler.Update)
	secured.DELETE("/tasks/:taskId", taskHandler.Delete)

	// Milestone routes
	secured.POST("/projects/:id/milestones", milestoneHandler.Create)
	secured.GET("/projects/:id/milestones", milestoneHandler.ListByProject)
	secured.PUT("/milestones/:milestoneId", milestoneHandler.Update)
	secured.DELETE("/milestones/:milestoneId", milestoneHandler.Delete)

	// Membership routes
	secured.POST("/projects/:id/employees", projectHandler.AddMember)
	secured.GET("/projects/:id/employees", projectHandler.ListMembers)
	secured.DELETE("/projects/:id/employees/:employeeId", projectHandler.RemoveMember)

	// Employee routes; static paths registered before :id
	secured.GET("/employees", employeeHandler.List)
	secured.GET("/employees/available", employeeHandler.Available)
	secured.GET("/employees/workload", employeeHandler.Workload)
	secured.GET("/employees/:id", employeeHandler.Get)
	secured.PUT("/employees/:id", employeeHandler.Update)
	secured.GET("/employees/:id/skills", skillHandler.ListForEmployee)

	// Skill routes
	secured.POST("/skills", skillHandler.Create)
	secured.GET("/skills", skillHandler.List)
	secured.POST("/skills/assign/:employeeId", skillHandler.Assign)
	secured.DELETE("/skills/remove", skillHandler.Remove)
}

// resolveActor rejects blacklisted tokens and exposes the authenticated actor
// to handlers.
func resolveActor(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token claims")
			}

			if claims.ID != "" {
				revoked, _ := tokenStore.IsTokenRevoked(c.Request().Context(), claims.ID)
				if revoked {
					return echo.NewHTTPError(http.StatusForbidden, "token revoked")
				}
			}

			c.Set(handler.ContextKeyActor, authz.Actor{
				UserID:     claims.UserID,
				EmployeeID: claims.EmployeeID,
			})
			c.Set(handler.ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
