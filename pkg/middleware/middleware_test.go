package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightline/internal/i18n"
	"freightline/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, utils.TraceID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Trace-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", w.Body.String())
}

func TestLanguageMiddleware(t *testing.T) {
	cat, err := i18n.Load("en")
	require.NoError(t, err)

	r := gin.New()
	r.Use(LanguageMiddleware(cat))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, utils.Language(c)) })

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "", "en"},
		{"header", "", "", "ar-SA,ar;q=0.9", "ar"},
		{"cookie beats header", "", "en", "ar", "en"},
		{"query beats cookie", "?lang=ar", "en", "", "ar"},
		{"unsupported query", "?lang=xx", "", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	signer, err := utils.NewSessionSigner("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionMiddleware(signer))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(utils.SessionIDKey)) })
	r.POST("/", func(c *gin.Context) {
		require.NoError(t, SetSessionCookie(c, signer, "sess-1"))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "sess-1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://freightline.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://freightline.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://freightline.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
