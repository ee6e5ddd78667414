package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// SessionContextKey is where RequireSession stores the verified claims.
const SessionContextKey = "auth_session"

// HTTPController mounts the auth endpoints on a Fiber router. It is thin
// glue: every decision lives in SessionIssuer and TokenService.
type HTTPController struct {
	issuer *SessionIssuer
	tokens TokenService
	logger Logger
}

// ControllerOption customizes the controller.
type ControllerOption func(*HTTPController)

// WithControllerLogger overrides the default logger.
func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *HTTPController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPController wires the issuer and token service into HTTP handlers.
func NewHTTPController(issuer *SessionIssuer, tokens TokenService, opts ...ControllerOption) *HTTPController {
	ctrl := &HTTPController{
		issuer: issuer,
		tokens: tokens,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ctrl)
		}
	}
	return ctrl
}

// RegisterRoutes mounts the endpoints.
func (h *HTTPController) RegisterRoutes(app fiber.Router) {
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/check-username", h.CheckUsername)
	app.Get("/user/profile", h.RequireSession, h.Profile)
}

// Register handles POST /auth/register.
func (h *HTTPController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result, err := h.issuer.Register(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "account created",
		"token":   result.Token,
		"user":    result.Account,
	})
}

// Login handles POST /auth/login.
func (h *HTTPController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result, err := h.issuer.Authenticate(c.Context(), input.Username, input.Password)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   result.Token,
		"user":    result.Account,
	})
}

// CheckUsername handles POST /auth/check-username.
func (h *HTTPController) CheckUsername(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"available": false,
			"message":   "invalid request body",
		})
	}

	available, err := h.issuer.CheckUsername(c.Context(), input.Username)
	if err != nil {
		if IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"available": false,
				"message":   "username must be at least 3 characters",
			})
		}
		return h.renderError(c, err)
	}

	message := "username available"
	if !available {
		message = "username already taken"
	}

	return c.JSON(fiber.Map{
		"available": available,
		"message":   message,
	})
}

// Profile handles GET /user/profile. RequireSession must run first.
func (h *HTTPController) Profile(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return h.unauthorized(c)
	}

	view, err := h.issuer.Profile(c.Context(), claims.AccountID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "account not found",
			})
		}
		return h.renderError(c, err)
	}

	return c.JSON(fiber.Map{"user": view})
}

// RequireSession implements the bearer token contract. Any failure, from a
// missing header to an expired token, gets the same response so callers
// cannot tell the sub-reasons apart.
func (h *HTTPController) RequireSession(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return h.unauthorized(c)
	}

	claims, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return h.unauthorized(c)
	}

	c.Locals(SessionContextKey, claims)
	return c.Next()
}

// ClaimsFromContext returns the claims RequireSession stored, or nil.
func ClaimsFromContext(c *fiber.Ctx) *SessionClaims {
	claims, _ := c.Locals(SessionContextKey).(*SessionClaims)
	return claims
}

func (h *HTTPController) unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "authentication required",
	})
}

func (h *HTTPController) renderError(c *fiber.Ctx, err error) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryValidation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": rich.Message,
			})
		case goerrors.CategoryConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": rich.Message,
			})
		case goerrors.CategoryAuth:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": rich.Message,
			})
		}
	}

	// Infrastructure failures stay generic: log the detail, say nothing.
	h.logger.Error("request failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
