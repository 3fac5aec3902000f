package puzzle

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func doJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGeneratePuzzleHandler(t *testing.T) {
	r := newTestRouter(NewService(&fakeCompleter{reply: `{"story":"s","question":"q","answer":"a","hints":["1","2","3"]}`}, nil, nil))

	w := doJSON(r, "/api/generate-puzzle", `{"keywords":["sea"],"difficulty":"hard","language":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "s", got.Story)
	assert.Len(t, got.Hints, 3)
}

func TestGeneratePuzzleHandlerErrors(t *testing.T) {
	r := newTestRouter(NewService(&fakeCompleter{err: errors.New("rate limited")}, nil, nil))

	w := doJSON(r, "/api/generate-puzzle", `{"keywords":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(r, "/api/generate-puzzle", `{"keywords":`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(r, "/api/generate-puzzle", `{"keywords":["sea"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate limited", body["message"])
}

func TestGenerateImageHandler(t *testing.T) {
	images := &fakeImages{url: "https://img.example/a.png"}
	r := newTestRouter(NewService(nil, images, nil))

	w := doJSON(r, "/api/generate-image", `{"description":"a lighthouse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image_url":"https://img.example/a.png"}`, w.Body.String())

	w = doJSON(r, "/api/generate-image", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestValidateAnswerHandler(t *testing.T) {
	r := newTestRouter(NewService(&fakeCompleter{reply: "???"}, nil, nil))

	w := doJSON(r, "/api/validate-answer", `{"question":"q","user_answer":"Paris","correct_answer":"paris"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got Verdict
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.IsCorrect)
	assert.Equal(t, fallbackExplanation, got.Explanation)
}
