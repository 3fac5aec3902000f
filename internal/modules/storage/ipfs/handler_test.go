package ipfs

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(newService(testGateway, nil)).RegisterRoutes(r.Group("/api"))
	return r
}

func TestUploadJSONHandler(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-ipfs", strings.NewReader(`{"content":{"a":1}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got uploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	want := mockReference([]byte(`{"a":1}`))
	assert.Equal(t, want.URI, got.IPFSURI)
	assert.Equal(t, testGateway+want.CID(), got.GatewayURL)
	assert.Equal(t, ProviderMock, got.Provider)
}

func TestUploadJSONHandlerRejectsBadBodies(t *testing.T) {
	r := newTestRouter()
	for _, body := range []string{`{}`, `{"content":[1,2]}`, `{"content":"text"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/upload-ipfs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "body=%s", body)
	}
}

func TestUploadFileHandler(t *testing.T) {
	r := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "clue.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("under the old oak"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got uploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, mockReference([]byte("under the old oak")).URI, got.IPFSURI)

	req = httptest.NewRequest(http.MethodPost, "/api/upload-file", strings.NewReader(""))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGatewayURLHandler(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gateway-url?uri=ipfs://bafy9", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://w3s.link/ipfs/bafy9"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gateway-url", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
