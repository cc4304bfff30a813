package handlers

import (
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/klassrum/internal/app"
)

type CatalogHandler struct {
	service *app.Service
}

func NewCatalogHandler(service *app.Service) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// HandleModules returns the full catalog as flat topic rows; callers group
// by module_name client-side.
func (h *CatalogHandler) HandleModules(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.Store.ListTopics()
	if err != nil {
		logger.Error.Printf("Failed to list topics: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch modules")
		return
	}

	writeJSON(w, http.StatusOK, topics)
}

// HandleProgress reports one row per catalog topic for the given user.
// Unknown users get all-false progress, same shape as a fresh signup.
func (h *CatalogHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		logger.Error.Printf("Failed to parse userID from path: %s", r.URL.Path)
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	rows, err := h.service.Store.FetchProgress(userID)
	if err != nil {
		logger.Error.Printf("Failed to fetch progress for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch progress")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
