package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/domain"
)

func TestReviewFlow(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "reader@example.com")
	book := createBook(t, server, token, "Dune", nil)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/reviews", token, map[string]any{
		"book_id": book.ID,
		"rating":  5,
		"comment": "A masterpiece.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	reviewEnvelope := decodeEnvelope[*domain.Review](t, rec)
	review := reviewEnvelope.Data
	assert.Equal(t, 5, review.Rating)

	// The book's rating reflects the review.
	rec = doRequest(t, server, http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	bookEnvelope := decodeEnvelope[*domain.Book](t, rec)
	assert.Equal(t, 5.0, bookEnvelope.Data.Rating)
	assert.Equal(t, 1, bookEnvelope.Data.RatingsCount)

	// A second review for the same book is rejected.
	rec = doRequest(t, server, http.MethodPost, "/api/v1/reviews", token, map[string]any{
		"book_id": book.ID,
		"rating":  1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Reviews show up on the book and under the user.
	rec = doRequest(t, server, http.MethodGet, "/api/v1/books/"+book.ID+"/reviews", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listEnvelope := decodeEnvelope[[]*domain.Review](t, rec)
	assert.Len(t, listEnvelope.Data, 1)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/users/me/reviews", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listEnvelope = decodeEnvelope[[]*domain.Review](t, rec)
	assert.Len(t, listEnvelope.Data, 1)

	// Update the rating; the book recomputes.
	rec = doRequest(t, server, http.MethodPatch, "/api/v1/reviews/"+review.ID, token, map[string]any{
		"rating": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	bookEnvelope = decodeEnvelope[*domain.Book](t, rec)
	assert.Equal(t, 3.0, bookEnvelope.Data.Rating)

	// Delete it; rating falls back to zero.
	rec = doRequest(t, server, http.MethodDelete, "/api/v1/reviews/"+review.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	bookEnvelope = decodeEnvelope[*domain.Book](t, rec)
	assert.Equal(t, 0.0, bookEnvelope.Data.Rating)
	assert.Equal(t, 0, bookEnvelope.Data.RatingsCount)
}

func TestUpdateReview_NotOwner(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	ownerToken, _ := registerUser(t, server, "owner@example.com")
	otherToken, _ := registerUser(t, server, "other@example.com")
	book := createBook(t, server, ownerToken, "Dune", nil)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/reviews", ownerToken, map[string]any{
		"book_id": book.ID,
		"rating":  5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decodeEnvelope[*domain.Review](t, rec).Data

	rec = doRequest(t, server, http.MethodPatch, "/api/v1/reviews/"+review.ID, otherToken, map[string]any{
		"rating": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodDelete, "/api/v1/reviews/"+review.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
