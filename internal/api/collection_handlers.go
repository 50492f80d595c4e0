package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/service"
)

// bookmarkRequest optionally carries an action for the bookmark endpoint.
// An empty body (or empty action) toggles the bookmark flag.
type bookmarkRequest struct {
	Action string `json:"action,omitempty"`
}

// handleBookmark toggles a bookmark, or with {"action": "start_reading"}
// marks the book as actively being read.
func (s *Server) handleBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	bookID := chi.URLParam(r, "id")

	var req bookmarkRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.BadRequest(w, "Invalid request body", s.logger)
			return
		}
	}

	switch req.Action {
	case "", "toggle":
		entry, err := s.services.Collection.ToggleBookmark(ctx, userID, bookID)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, entry, s.logger)

	case "start_reading":
		entry, err := s.services.Collection.StartReading(ctx, userID, bookID)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, entry, s.logger)

	default:
		response.BadRequest(w, "Unknown action: "+req.Action, s.logger)
	}
}

// handleSaveSession records a finished reading sitting against a book.
func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var req service.SaveSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.services.Collection.SaveSession(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleGetCollection returns the user's collection joined with catalog books.
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	items, err := s.services.Collection.GetCollection(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, items, s.logger)
}
