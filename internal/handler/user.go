package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courseapp/course-service/internal/middleware"
	"github.com/courseapp/course-service/internal/models"
	"github.com/courseapp/course-service/internal/service"
)

// GetCurrentUser returns the authenticated user's public fields.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		h.respondMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}
	h.respondJSON(w, http.StatusOK, user.Profile())
}

// CreateUser handles signup. Validation failures come back as a list of
// per-field messages; anything else is a generic server error.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": err.Error(),
			"error":   struct{}{},
		})
		return
	}

	if _, err := h.svc.RegisterUser(req); err != nil {
		if ve, ok := service.AsValidation(err); ok {
			h.respondErrors(w, ve.Messages)
			return
		}
		h.log.Errorf("There was an error creating the user: %v", err)
		h.respondMessage(w, http.StatusInternalServerError, "There was an error creating the user")
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
