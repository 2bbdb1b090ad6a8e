package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/api/handler"
	"github.com/iiTzIsh/reviewlens/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() *pipeline.Coordinator {
	return pipeline.NewCoordinator(
		analysis.NewClassifier(nil, ""),
		analysis.NewScorer(nil, ""),
		analysis.NewSummarizer(nil, ""),
	)
}

func decodeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.NotNil(t, envelope.Data)
	return envelope.Data
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func TestAnalyzeReview_Success(t *testing.T) {
	st := newMockStore()
	h := handler.NewAnalyzeReviewHandler(newTestCoordinator(), st)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/analyze",
		strings.NewReader(`{"review_id":"r1","text":"An excellent stay"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "r1", data["review_id"])

	analysisData, ok := data["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "positive", analysisData["sentiment"])

	// Result is persisted.
	require.Len(t, st.saved, 1)
	assert.Equal(t, "r1", st.saved[0].ReviewID)
}

func TestAnalyzeReview_GeneratesID(t *testing.T) {
	h := handler.NewAnalyzeReviewHandler(newTestCoordinator(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/analyze",
		strings.NewReader(`{"text":"fine"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.NotEmpty(t, data["review_id"])
}

func TestAnalyzeReview_InvalidJSON(t *testing.T) {
	h := handler.NewAnalyzeReviewHandler(newTestCoordinator(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/analyze",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeErrorCode(t, rec.Body.Bytes()))
}

func TestAnalyzeReview_EmptyTextNotPersisted(t *testing.T) {
	st := newMockStore()
	h := handler.NewAnalyzeReviewHandler(newTestCoordinator(), st)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/analyze",
		strings.NewReader(`{"review_id":"r1","text":"  "}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "review text is empty", data["error"])
	assert.Empty(t, st.saved)
}

func TestAnalyzeBatch_Success(t *testing.T) {
	st := newMockStore()
	h := handler.NewAnalyzeBatchHandler(newTestCoordinator(), st)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/batch",
		strings.NewReader(`{"reviews":[{"text":"excellent"},{"text":"terrible"}]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())

	results, ok := data["individual_results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 2)
	assert.Contains(t, data, "batch_statistics")
	assert.NotContains(t, data, "collection_summary")
	assert.Len(t, st.saved, 2)
}

func TestAnalyzeBatch_WithSummary(t *testing.T) {
	h := handler.NewAnalyzeBatchHandler(newTestCoordinator(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/batch",
		strings.NewReader(`{"reviews":[{"text":"excellent room"}],"summarize":true}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Contains(t, data, "collection_summary")
}

func TestAnalyzeBatch_EmptyList(t *testing.T) {
	h := handler.NewAnalyzeBatchHandler(newTestCoordinator(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/batch",
		strings.NewReader(`{"reviews":[]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeErrorCode(t, rec.Body.Bytes()))
}

func TestAnalyzeBatch_TooLarge(t *testing.T) {
	h := handler.NewAnalyzeBatchHandler(newTestCoordinator(), nil)

	reviews := make([]string, 101)
	for i := range reviews {
		reviews[i] = `{"text":"x"}`
	}
	body := fmt.Sprintf(`{"reviews":[%s]}`, strings.Join(reviews, ","))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeBatch_StoreFailureDoesNotFailRequest(t *testing.T) {
	st := newMockStore()
	st.err = fmt.Errorf("db down")
	h := handler.NewAnalyzeBatchHandler(newTestCoordinator(), st)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/batch",
		strings.NewReader(`{"reviews":[{"text":"fine"}]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
