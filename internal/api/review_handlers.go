package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/service"
)

// handleCreateReview adds a review for a book.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	review, err := s.services.Review.CreateReview(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, review, s.logger)
}

// handleUpdateReview edits a review owned by the user.
func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	review, err := s.services.Review.UpdateReview(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, review, s.logger)
}

// handleDeleteReview removes a review owned by the user.
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Review.DeleteReview(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleGetBookReviews returns all reviews for a book.
func (s *Server) handleGetBookReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.services.Review.GetReviewsForBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reviews, s.logger)
}

// handleGetMyReviews returns the authenticated user's reviews.
func (s *Server) handleGetMyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.services.Review.GetReviewsForUser(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reviews, s.logger)
}
