package api

import (
	"net/http"
	"time"

	"github.com/bookspace/bookspace-server/internal/http/response"
)

// handleGetInsights returns the user's reading statistics.
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.services.Insights.GetInsights(r.Context(), getUserID(r.Context()), time.Now())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, insights, s.logger)
}
