package handler

import (
	"net/http"

	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/internal/pipeline"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

type statusResponse struct {
	Components map[string]string    `json:"components"`
	Stats      models.WorkflowStats `json:"workflow_stats"`
}

// NewStatusHandler returns an http.HandlerFunc for GET /api/v1/status.
func NewStatusHandler(coord *pipeline.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, statusResponse{
			Components: coord.Status(),
			Stats:      coord.Stats(),
		})
	}
}
