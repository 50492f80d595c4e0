package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/service"
)

// handleListBooks returns the full catalog.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.services.Book.ListBooks(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleCreateBook adds a book to the catalog.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.services.Book.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleDeleteBook removes a book from the catalog.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Book.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleGetBook returns a single book by ID.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.services.Book.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleSearchBooks runs a full-text catalog search.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit")

	result, err := s.services.Book.SearchBooks(r.Context(), query, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleRandomBooks returns a random sample of the catalog.
func (s *Server) handleRandomBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.services.Book.RandomBooks(r.Context(), queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handlePopularBooks returns a sample of highly rated books.
func (s *Server) handlePopularBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.services.Book.PopularBooks(r.Context(), queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleBooksByMoods returns books matching the requested moods (?m=cozy&m=dark).
func (s *Server) handleBooksByMoods(w http.ResponseWriter, r *http.Request) {
	moods := r.URL.Query()["m"]

	books, err := s.services.Book.BooksByMoods(r.Context(), moods, queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleGetRecommendations returns books similar to the given one.
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	books, err := s.services.Recommendation.GetRecommendations(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}
