package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/domain"
	"github.com/bookspace/bookspace-server/internal/service"
)

func TestBookmarkToggle(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "reader@example.com")
	book := createBook(t, server, token, "Dune", nil)

	// First toggle bookmarks.
	rec := doRequest(t, server, http.MethodPost, "/api/v1/books/"+book.ID+"/bookmark", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope[*domain.BookCollectionEntry](t, rec)
	assert.True(t, envelope.Data.IsBookmarked)

	// Second toggle removes the bookmark.
	rec = doRequest(t, server, http.MethodPost, "/api/v1/books/"+book.ID+"/bookmark", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope[*domain.BookCollectionEntry](t, rec)
	assert.False(t, envelope.Data.IsBookmarked)
}

func TestBookmark_StartReadingAction(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "reader@example.com")
	book := createBook(t, server, token, "Dune", nil)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/books/"+book.ID+"/bookmark", token, map[string]any{
		"action": "start_reading",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope[*domain.BookCollectionEntry](t, rec)
	assert.Equal(t, domain.StatusReading, envelope.Data.Status)

	// Unknown actions are rejected.
	rec = doRequest(t, server, http.MethodPost, "/api/v1/books/"+book.ID+"/bookmark", token, map[string]any{
		"action": "teleport",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveSessionAndGetCollection(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "reader@example.com")
	book := createBook(t, server, token, "Dune", nil)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/books/"+book.ID+"/sessions", token, map[string]any{
		"page_number":  50,
		"minutes_read": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	sessionEnvelope := decodeEnvelope[*service.SaveSessionResponse](t, rec)
	assert.Equal(t, 50, sessionEnvelope.Data.Session.PagesRead)
	assert.Equal(t, domain.StatusReading, sessionEnvelope.Data.Status)
	assert.Equal(t, 50, sessionEnvelope.Data.Progress)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/collection", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	collectionEnvelope := decodeEnvelope[[]service.CollectionItem](t, rec)
	require.Len(t, collectionEnvelope.Data, 1)
	assert.Equal(t, book.ID, collectionEnvelope.Data[0].Book.ID)
	assert.Equal(t, 30, collectionEnvelope.Data[0].MinutesRead)

	// Sessions against unknown books fail.
	rec = doRequest(t, server, http.MethodPost, "/api/v1/books/book-ghost/sessions", token, map[string]any{
		"page_number":  10,
		"minutes_read": 10,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
