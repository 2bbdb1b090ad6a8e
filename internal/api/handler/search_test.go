package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iiTzIsh/reviewlens/internal/api/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHandler_Success(t *testing.T) {
	h := handler.NewSearchHandler()

	body := `{
		"reviews": [
			{"text":"great pool","sentiment":"positive","score":4.5},
			{"text":"noisy room","sentiment":"negative","score":2.0}
		],
		"criteria": {"sentiment":"positive"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())

	results, ok := data["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 1)

	stats, ok := data["search_stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, stats["total_searched"])
	assert.EqualValues(t, 1, stats["total_matched"])
	assert.InDelta(t, 50.0, stats["match_percent"].(float64), 0.001)
}

func TestSearchHandler_InvalidScoreBounds(t *testing.T) {
	h := handler.NewSearchHandler()

	body := `{"reviews":[],"criteria":{"min_score":4.0,"max_score":2.0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeErrorCode(t, rec.Body.Bytes()))
}

func TestSearchHandler_InvalidJSON(t *testing.T) {
	h := handler.NewSearchHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{{`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
