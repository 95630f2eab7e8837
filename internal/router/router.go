package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"interviewprep/internal/auth"
	"interviewprep/internal/config"
	"interviewprep/internal/errors"
	"interviewprep/internal/handler"
	"interviewprep/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	interviewHandler *handler.InterviewHandler,
	interviewerHandler *handler.InterviewerHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.PUT("/auth/reset-password/:token", authHandler.ResetPassword)

	api.GET("/interviews/available", interviewHandler.AvailableSlots)
	api.GET("/interviewers", interviewerHandler.List)
	api.POST("/interviewers/apply", interviewerHandler.Apply)
	api.GET("/seed/slots", seedHandler.SeedSlots)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/profile", authHandler.Profile)

	secured.PUT("/users/profile", userHandler.UpdateProfile)
	secured.POST("/users/resume", userHandler.UploadResume)
	secured.DELETE("/users/profile", userHandler.DeleteAccount)

	secured.GET("/interviews/user/:userId", interviewHandler.UserInterviews)
	secured.POST("/interviews/book", interviewHandler.Book)
	secured.PUT("/interviews/:id/cancel", interviewHandler.Cancel)
	secured.GET("/interviews/:id/feedback", interviewHandler.GetFeedback)
	secured.POST("/interviews/:id/feedback", interviewHandler.SubmitFeedback)

	secured.POST("/interviewers/resume", interviewerHandler.UploadResume)
	secured.GET("/interviewers/profile/:id", interviewerHandler.Profile)

	// Admin routes
	admin := secured.Group("/admin", adminOnly)
	admin.GET("/stats", interviewHandler.Stats)
	admin.GET("/applications", interviewerHandler.Applications)
	admin.PUT("/applications/:id/review", interviewerHandler.Review)
}

// adminOnly rejects callers whose token does not carry the admin role.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "ACCESS_DENIED",
			})
		}
		return next(c)
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
