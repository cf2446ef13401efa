package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjex-salaj/site-api/internal/blob"
	"github.com/cjex-salaj/site-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsageReporter struct {
	report *service.UsageReport
	err    error
}

func (s *stubUsageReporter) Report(ctx context.Context) (*service.UsageReport, error) {
	return s.report, s.err
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func newBlobRouter(store blob.Store, usage usageReporter, maxUploadSize int64) *gin.Engine {
	h := NewBlobHandler(store, usage, nil, "https://cdn.example.com", maxUploadSize)
	r := gin.New()
	r.GET("/blob/list", h.List)
	r.POST("/blob/upload", h.Upload)
	r.DELETE("/blob/delete", h.Delete)
	r.GET("/blob/usage", h.Usage)
	return r
}

func TestBlobUpload(t *testing.T) {
	t.Run("missing filename", func(t *testing.T) {
		r := newBlobRouter(blob.NewMemory(""), nil, 0)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload", strings.NewReader("data")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		r := newBlobRouter(blob.NewMemory(""), nil, 0)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=a.pdf", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("payload too large", func(t *testing.T) {
		r := newBlobRouter(blob.NewMemory(""), nil, 8)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=a.pdf", strings.NewReader("123456789")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("default folder and reject-if-exists", func(t *testing.T) {
		store := blob.NewMemory("")
		r := newBlobRouter(store, nil, 0)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=orar.pdf", strings.NewReader("v1")))
		require.Equal(t, http.StatusOK, rec.Code)

		exists, err := store.Exists(context.Background(), "documents/orar.pdf")
		require.NoError(t, err)
		assert.True(t, exists)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=orar.pdf", strings.NewReader("v2")))
		assert.Equal(t, http.StatusConflict, rec.Code)

		body, err := store.Get(context.Background(), "documents/orar.pdf")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(body), "conflicting upload must not replace the object")
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		store := blob.NewMemory("")
		r := newBlobRouter(store, nil, 0)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=orar.pdf", strings.NewReader("v1")))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=orar.pdf&overwrite=true", strings.NewReader("v2")))
		require.Equal(t, http.StatusOK, rec.Code)

		body, err := store.Get(context.Background(), "documents/orar.pdf")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(body))
	})

	t.Run("unique appends a suffix", func(t *testing.T) {
		store := blob.NewMemory("")
		r := newBlobRouter(store, nil, 0)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=poza.jpg&folder=gallery&unique=true", strings.NewReader("img")))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		objects, err := store.List(context.Background(), "gallery/")
		require.NoError(t, err)
		require.Len(t, objects, 2)
		for _, obj := range objects {
			assert.True(t, strings.HasPrefix(obj.Filename, "poza_"))
			assert.True(t, strings.HasSuffix(obj.Filename, ".jpg"))
		}
	})

	t.Run("overwrite and unique are mutually exclusive", func(t *testing.T) {
		r := newBlobRouter(blob.NewMemory(""), nil, 0)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=a.pdf&overwrite=true&unique=true", strings.NewReader("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBlobUploadObservesExistsCheck(t *testing.T) {
	metrics := service.NewMetricsService()
	h := NewBlobHandler(blob.NewMemory(""), nil, metrics, "", 0)
	r := gin.New()
	r.POST("/blob/upload", h.Upload)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blob/upload?filename=orar.pdf", strings.NewReader("v1")))
	require.Equal(t, http.StatusOK, rec.Code)

	// The successful reject-if-exists lookup counts alongside the put.
	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `blob_operations_total{operation="exists",outcome="ok"} 1`)
	assert.Contains(t, scrape.Body.String(), `blob_operations_total{operation="put",outcome="ok"} 1`)
}

func TestBlobList(t *testing.T) {
	store := blob.NewMemory("")
	_, err := store.Put(context.Background(), "documents/orar.pdf", []byte("x"), "")
	require.NoError(t, err)
	r := newBlobRouter(store, nil, 0)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blob/list?folder=documents", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Len(t, data["files"], 1)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blob/list", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlobDelete(t *testing.T) {
	t.Run("by pathname", func(t *testing.T) {
		store := blob.NewMemory("")
		_, err := store.Put(context.Background(), "documents/orar.pdf", []byte("x"), "")
		require.NoError(t, err)
		r := newBlobRouter(store, nil, 0)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/blob/delete?pathname=documents/orar.pdf", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		exists, err := store.Exists(context.Background(), "documents/orar.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("by public url", func(t *testing.T) {
		store := blob.NewMemory("https://cdn.example.com")
		_, err := store.Put(context.Background(), "documents/orar.pdf", []byte("x"), "")
		require.NoError(t, err)
		r := newBlobRouter(store, nil, 0)

		rec := httptest.NewRecorder()
		target := "/blob/delete?url=" + "https%3A%2F%2Fcdn.example.com%2Fdocuments%2Forar.pdf"
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		exists, err := store.Exists(context.Background(), "documents/orar.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		r := newBlobRouter(blob.NewMemory(""), nil, 0)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/blob/delete", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBlobUsage(t *testing.T) {
	usage := &stubUsageReporter{report: &service.UsageReport{UsedSize: 1024, FilesCount: 3}}
	r := newBlobRouter(blob.NewMemory(""), usage, 0)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blob/usage", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(1024), data["usedSize"])
	assert.Equal(t, float64(3), data["filesCount"])
}
