package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/middleware"
	"github.com/luminance-clinic/backend-clinic/models"
)

type AuthHandler struct {
	supabase *supa.Client
	config   *config.Config
	log      *logrus.Logger
}

func NewAuthHandler(supabase *supa.Client, cfg *config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		supabase: supabase,
		config:   cfg,
		log:      log,
	}
}

// Register creates a customer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	h.register(c, req.Name, req.Email, req.Password, models.RoleCustomer)
}

// AdminRegister creates an administrator account. The registration code
// is held server-side; with none configured the endpoint is disabled.
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	var req models.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	if h.config.AdminRegistrationCode == "" || req.AdminCode != h.config.AdminRegistrationCode {
		c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Error:   "Invalid admin code",
		})
		return
	}

	h.register(c, req.Name, req.Email, req.Password, models.RoleAdmin)
}

func (h *AuthHandler) register(c *gin.Context, name, email, password, role string) {
	signup, err := h.supabase.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"name": name,
			"role": role,
		},
	})
	if err != nil {
		h.log.WithError(err).WithField("email", email).Warn("signup rejected")
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   authErrorMessage(err),
		})
		return
	}

	// Mirror the profile row. Upsert keeps this safe when a backend
	// trigger already created it from the signup metadata.
	profileData := map[string]interface{}{
		"id":    signup.ID.String(),
		"name":  name,
		"email": email,
		"role":  role,
	}

	var profiles []models.Profile
	data, _, err := h.supabase.From("profiles").
		Insert(profileData, true, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &profiles)
	}

	if err != nil || len(profiles) == 0 {
		h.log.WithError(err).WithField("user_id", signup.ID.String()).Error("failed to mirror profile row")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Registration succeeded but profile setup failed",
		})
		return
	}

	profile := profiles[0]

	token, err := middleware.GenerateToken(&profile, h.config.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to generate token",
		})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Registration successful",
		Data:    models.LoginResponse{Token: token, User: &profile},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	session, err := h.supabase.Auth.SignInWithEmailPassword(req.Email, req.Password)
	if err != nil {
		h.log.WithField("email", req.Email).Info("login rejected")
		c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Error:   "Invalid email or password",
		})
		return
	}

	var profiles []models.Profile
	data, _, err := h.supabase.From("profiles").
		Select("*", "", false).
		Eq("id", session.User.ID.String()).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &profiles)
	}

	if err != nil || len(profiles) == 0 {
		h.log.WithError(err).WithField("user_id", session.User.ID.String()).Error("profile lookup failed after login")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to load profile",
		})
		return
	}

	profile := profiles[0]

	token, err := middleware.GenerateToken(&profile, h.config.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to generate token",
		})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data:    models.LoginResponse{Token: token, User: &profile},
	})
}

// Logout clears the session cookie. The token itself is stateless and
// simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", h.config.Environment == "production", true)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged out",
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var profiles []models.Profile
	data, _, err := h.supabase.From("profiles").
		Select("*", "", false).
		Eq("id", userID.(string)).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &profiles)
	}

	if err != nil || len(profiles) == 0 {
		h.log.WithError(err).Error("failed to fetch profile")
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    profiles[0],
	})
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	// Identity and role are not self-service.
	delete(req, "id")
	delete(req, "email")
	delete(req, "role")
	delete(req, "created_at")

	var profiles []models.Profile
	data, _, err := h.supabase.From("profiles").
		Update(req, "", "").
		Eq("id", userID.(string)).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &profiles)
	}

	if err != nil || len(profiles) == 0 {
		h.log.WithError(err).Error("failed to update profile")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    profiles[0],
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	secure := h.config.Environment == "production"
	c.SetCookie("token", token, int(middleware.TokenTTL.Seconds()), "/", "", secure, true)
}

// authErrorMessage keeps hosted-auth failures human readable without
// leaking raw backend responses.
func authErrorMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already exists"):
		return "Email is already registered"
	case strings.Contains(msg, "password"):
		return "Password does not meet the minimum requirements"
	case strings.Contains(msg, "invalid login credentials"):
		return "Invalid email or password"
	default:
		return "Registration failed, please try again"
	}
}
