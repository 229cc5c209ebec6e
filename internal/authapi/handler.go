package authapi

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const contextKeyAccountID = "account_id"

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler serves the auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register creates an account.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login issues a token for valid credentials.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the profile behind the bearer token.
func (h *Handler) Me(c echo.Context) error {
	id, ok := c.Get(contextKeyAccountID).(int64)
	if !ok {
		return ErrUnauthorized
	}

	user, err := h.svc.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// JWTAuth validates the Bearer token and stores the account id on the context.
func JWTAuth(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return ErrUnauthorized
			}

			id, err := svc.ValidateToken(parts[1])
			if err != nil {
				return ErrUnauthorized
			}

			c.Set(contextKeyAccountID, id)
			return next(c)
		}
	}
}

// RequestLogger logs each request once it has been served.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			log.Printf("%s %s %d %dms",
				c.Request().Method,
				c.Request().URL.Path,
				c.Response().Status,
				time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}

// NewServer builds the echo instance with every auth route under
// /api/v1/auth.
func NewServer(svc *Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(RequestLogger())

	h := NewHandler(svc)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	g := e.Group("/api/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, JWTAuth(svc))

	return e
}
