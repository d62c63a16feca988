package handlers

import (
	"log/slog"
	"net/http"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register godoc
//	@Summary		Register a new account
//	@Description	Creates a customer or vendor account. Vendors must supply a shop name.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration Details"
//	@Success		201		{object}	models.User				"Successfully registered"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Registration failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered successfully", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//	@Summary		Log in
//	@Description	Authenticates credentials and returns a bearer token. Repeated failures are rate limited per account.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Login Credentials"
//	@Success		200			{object}	models.LoginResponse	"Token issued"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Login successful", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

// Profile godoc
//	@Summary		Get own profile
//	@Description	Returns the authenticated user's profile.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.User				"Profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"User not found"
//	@Security		BearerAuth
//	@Router			/users/me [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to fetch profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
