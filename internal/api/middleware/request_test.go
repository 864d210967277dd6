package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newChain(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), Logger(logger), Recovery(logger))
	engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	engine.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	engine.GET("/panic", func(*gin.Context) { panic("boom") })
	return engine
}

func TestChain(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantCode  int
		wantLevel zapcore.Level
		wantLines int
	}{
		{name: "Served", path: "/ok", wantCode: http.StatusOK, wantLevel: zapcore.InfoLevel, wantLines: 1},
		{name: "Client error", path: "/missing", wantCode: http.StatusNotFound, wantLevel: zapcore.WarnLevel, wantLines: 1},
		// the panic line plus the access line
		{name: "Handler panic", path: "/panic", wantCode: http.StatusInternalServerError, wantLevel: zapcore.ErrorLevel, wantLines: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			engine := newChain(zap.New(core))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			id := w.Header().Get(RequestIDHeader)
			require.NotEmpty(t, id)

			require.Equal(t, tt.wantLines, logs.Len())
			access := logs.FilterMessage("request").All()
			require.Len(t, access, 1)
			assert.Equal(t, tt.wantLevel, access[0].Level)
			fields := access[0].ContextMap()
			assert.Equal(t, id, fields["request_id"])
			assert.EqualValues(t, tt.wantCode, fields["status"])
		})
	}
}

func TestGetRequestID_OutsideChain(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
