package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/klassrum/internal/app"
	"github.com/shrimpsizemoose/klassrum/internal/metrics"
)

type SubmissionHandler struct {
	service *app.Service
}

func NewSubmissionHandler(service *app.Service) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

// HandleUpload accepts a multipart "assignment" file for a (user, topic)
// pair taken verbatim from the path. Ids are not checked against the
// users/topics tables beyond foreign keys.
func (h *SubmissionHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			"/api/upload",
			r.Method,
			"200",
		).Observe(duration)
	}()

	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	topicID, err := strconv.ParseInt(r.PathValue("topicID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid topic id")
		return
	}

	file, header, err := r.FormFile("assignment")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	assignmentID, err := h.service.SaveSubmission(userID, topicID, file, header)
	if err != nil {
		logger.Error.Printf("Failed to save submission for user %d topic %d: %v", userID, topicID, err)
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "Failed to save assignment")
		return
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Assignment uploaded successfully",
		"assignmentId": assignmentID,
	})
}
