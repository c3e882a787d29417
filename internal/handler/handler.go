package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	md "github.com/bookorg/bookstore-service/pkg/middleware"

	"github.com/bookorg/bookstore-service/pkg/auth"
	"github.com/bookorg/bookstore-service/pkg/validate"
)

type Handler struct {
	bookSvc      BookService
	inventorySvc InventoryService
	authSvc      AuthService
	tokens       *auth.TokenManager
	log          *zap.Logger
}

func New(bookSvc BookService, inventorySvc InventoryService, authSvc AuthService, tokens *auth.TokenManager, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:      bookSvc,
		inventorySvc: inventorySvc,
		authSvc:      authSvc,
		tokens:       tokens,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	authGroup := e.Group("/auth",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(baseRPS),
	)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/register", h.Register)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication(h.tokens),
	)

	api.GET("/books", h.GetBooks)
	api.POST("/books", h.CreateBook)
	api.PUT("/books", h.UpdateBook)
	api.GET("/books/:isbn", h.GetBook)
	api.DELETE("/books/:isbn", h.DeleteBook)

	api.GET("/inventory/isbn/:isbn/copies", h.GetInventoryByIsbn)
	api.PUT("/inventory/isbn/:isbn/copies", h.UpdateInventory)
	api.GET("/inventory/author/:author/copies", h.GetInventoryByAuthor)
	api.GET("/inventory/title/:title/copies", h.GetInventoryByTitle)
	api.GET("/inventory/copies", h.GetTotalCopies)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
