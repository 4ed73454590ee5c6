package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		*seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestLogger_AssignsID(t *testing.T) {
	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "response must carry a generated uuid")
	assert.Equal(t, id, seen, "handlers see the same id through the context")
}

func TestRequestLogger_PropagatesValidID(t *testing.T) {
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, incoming)

	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	assert.Equal(t, incoming, w.Header().Get(HeaderRequestID))
	assert.Equal(t, incoming, seen)
}

func TestRequestLogger_ReplacesMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid\nforged-log-line")

	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	id := w.Header().Get(HeaderRequestID)
	assert.NotEqual(t, "not-a-uuid\nforged-log-line", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
