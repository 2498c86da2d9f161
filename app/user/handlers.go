package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/sanitizer"
	"github.com/joefazee/arena/internal/validator"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service       Service
	sanitizer     sanitizer.HTMLStripperer
	defaultRegion string
	logger        logger.Logger
}

// NewHandler creates a new user handler
func NewHandler(service Service, s sanitizer.HTMLStripperer, defaultRegion string, log logger.Logger) *Handler {
	return &Handler{service: service, sanitizer: s, defaultRegion: defaultRegion, logger: log}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user account and its ledger account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterUserRequest  true  "User registration details"
// @Success      201      {object}  api.Response{data=Response}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	v := validator.New()
	if !req.Validate(v, h.sanitizer, h.defaultRegion) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to register user")
		return
	}

	api.SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticate by email or phone and return an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to log in")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// GetProfile godoc
// @Summary      Get the caller's profile
// @Description  Return the authenticated user with their ledger account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=ProfileResponse}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), caller.UserID)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get profile")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}
