package handlers

import (
	"errors"
	"log"

	"ordersystem/internal/middleware"
	"ordersystem/internal/models"
	"ordersystem/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles HTTP requests for registration, login, email
// verification and logout.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.HandleRegisterForm)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/verify_email/:token", h.HandleVerifyEmail)
	router.Get("/logout", h.HandleLogout)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// HandleRegisterForm describes the registration form (no server-side
// templating; clients render it themselves).
func (h *AuthHandler) HandleRegisterForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action": "/register",
		"fields": []string{"username", "email", "password"},
	})
}

// HandleRegister creates an unverified account and triggers the
// verification email.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	reg, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) || errors.Is(err, models.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Username or email already exists!",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	message := "Registration successful! Please check your email to verify your account."
	if !reg.VerificationSent {
		message = "Registration successful, but the verification email could not be sent. Please contact support."
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"user":    reg.User,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLoginForm describes the login form.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action": "/login",
		"fields": []string{"username", "password"},
	})
}

// HandleLogin authenticates the user and establishes a server-side session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotVerified):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Please verify your email before logging in.",
			})
		case errors.Is(err, models.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials!",
			})
		default:
			log.Printf("Error during login for user %s: %v", req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Authentication failed",
			})
		}
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to open session for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// HandleVerifyEmail redeems a verification token. Redeeming a token for an
// already-verified account is an informational no-op.
func (h *AuthHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	user, err := h.authService.VerifyEmail(token)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"message": "Your account has been verified! You can now log in.",
		})
	case errors.Is(err, models.ErrAlreadyVerified):
		return c.JSON(fiber.Map{
			"message": "Account already verified. Please log in.",
		})
	case errors.Is(err, models.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Verification link is invalid or has expired.",
		})
	default:
		if user != nil {
			log.Printf("Error verifying user %s: %v", user.ID, err)
		} else {
			log.Printf("Error verifying email: %v", err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not verify email",
		})
	}
}

// HandleLogout destroys the session. Logging out without a session is
// harmless.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if destroyErr := sess.Destroy(); destroyErr != nil {
			log.Printf("Failed to destroy session: %v", destroyErr)
		}
	}
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
