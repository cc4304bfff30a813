package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/klassrum/internal/app"
	"github.com/shrimpsizemoose/klassrum/internal/metrics"
	"github.com/shrimpsizemoose/klassrum/internal/models"
	"github.com/shrimpsizemoose/klassrum/internal/store"
)

type AuthHandler struct {
	service *app.Service
}

func NewAuthHandler(service *app.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := h.service.Register(&req)
	if err != nil {
		var vErrs validator.ValidationErrors
		switch {
		case errors.As(err, &vErrs):
			writeError(w, http.StatusBadRequest, "username, email and password are required")
		case errors.Is(err, store.ErrDuplicateUser):
			writeError(w, http.StatusConflict, "Email or username already in use")
		default:
			logger.Error.Printf("Signup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	metrics.SignupsTotal.Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Signup successful",
		"userId":  userID,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Login(&req)
	if err != nil {
		// same status, same body for unknown email and wrong password
		if errors.Is(err, app.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error.Printf("Login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"userId":   user.ID,
		"username": user.Username,
	})
}
