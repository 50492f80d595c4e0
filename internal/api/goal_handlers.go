package api

import (
	"net/http"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/service"
)

// handleSetGoal creates or replaces the user's reading goal.
func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req service.SetGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	goal, err := s.services.Goal.SetGoal(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, goal, s.logger)
}

// handleGetGoal returns the user's active reading goal.
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.services.Goal.GetGoal(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, goal, s.logger)
}

// handleDeleteGoal deactivates the user's reading goal.
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Goal.DeleteGoal(r.Context(), getUserID(r.Context())); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
