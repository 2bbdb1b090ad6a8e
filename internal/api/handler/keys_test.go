package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/iiTzIsh/reviewlens/internal/api/handler"
	"github.com/iiTzIsh/reviewlens/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newKeysRouter(st *mockStore) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/admin/keys", handler.NewCreateKeyHandler(st))
	r.Get("/api/v1/admin/keys", handler.NewListKeysHandler(st))
	r.Delete("/api/v1/admin/keys/{keyID}", handler.NewRevokeKeyHandler(st))
	return r
}

func TestCreateKey_Success(t *testing.T) {
	st := newMockStore()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys",
		strings.NewReader(`{"name":"analytics","scopes":["read","admin"]}`))
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decodeData(t, rec.Body.Bytes())

	rawKey, ok := data["key"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(rawKey, "rvl_"))
	assert.Equal(t, rawKey[:8], data["key_prefix"])
	assert.Equal(t, "analytics", data["name"])

	// Only the bcrypt hash is stored, and it verifies against the raw key.
	require.Len(t, st.keys, 1)
	for _, k := range st.keys {
		assert.NotContains(t, k.KeyHash, rawKey)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(k.KeyHash), []byte(rawKey)))
		assert.Equal(t, []string{"read", "admin"}, k.Scopes)
	}
}

func TestCreateKey_DefaultScopes(t *testing.T) {
	st := newMockStore()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys",
		strings.NewReader(`{"name":"reader"}`))
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	for _, k := range st.keys {
		assert.Equal(t, []string{"read"}, k.Scopes)
	}
}

func TestCreateKey_MissingName(t *testing.T) {
	st := newMockStore()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys",
		strings.NewReader(`{"scopes":["read"]}`))
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeErrorCode(t, rec.Body.Bytes()))
}

func TestCreateKey_StoreError(t *testing.T) {
	st := newMockStore()
	st.err = assert.AnError

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys",
		strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListKeys_Success(t *testing.T) {
	st := newMockStore()
	id := uuid.New()
	st.keys[id] = &models.APIKey{
		ID:        id,
		Name:      "analytics",
		KeyHash:   "secret-hash",
		KeyPrefix: "rvl_abcd",
		Scopes:    []string{"read"},
		CreatedAt: time.Now().UTC(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/keys", nil)
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Contains(t, rec.Body.String(), "rvl_abcd")
}

func TestRevokeKey_Success(t *testing.T) {
	st := newMockStore()
	id := uuid.New()
	st.keys[id] = &models.APIKey{ID: id, Name: "old"}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, st.keys)
}

func TestRevokeKey_NotFound(t *testing.T) {
	st := newMockStore()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevokeKey_InvalidID(t *testing.T) {
	st := newMockStore()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/nope", nil)
	rec := httptest.NewRecorder()
	newKeysRouter(st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
