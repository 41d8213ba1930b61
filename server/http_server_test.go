package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaiNageswarS/resume-chat/db"
	"github.com/SaiNageswarS/resume-chat/llm"
	"github.com/SaiNageswarS/resume-chat/services"
	"github.com/SaiNageswarS/resume-chat/snapshot"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.ProvideMemoryStore()
	sessions := services.ProvideSessionService(store, snapshot.ProvideMemoryStore(), llm.NewMockGenerator(), 0)
	return ProvideHTTPServer(sessions, true).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["localMode"])
	assert.Greater(t, body["ts"].(float64), float64(0))
}

func TestLLMStatus(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/llm/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock", body["provider"])
}

func TestSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	t.Run("new session is empty", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/session/s1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", body["resume"])
		assert.Empty(t, body["chat"])
	})

	t.Run("save resume", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPut, "/resume/s1", `{"text":"my resume"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["saved"])
		assert.Greater(t, body["updatedAt"].(float64), float64(0))
	})

	t.Run("chat turn answers", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/chat", `{"sessionId":"s1","message":"hello"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Here's a clearer version: hello", body["assistantMessage"])
	})

	t.Run("session reflects resume and chat", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/session/s1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "my resume", body["resume"])

		chat, ok := body["chat"].([]any)
		require.True(t, ok)
		require.Len(t, chat, 2)

		first := chat[0].(map[string]any)
		assert.Equal(t, "user", first["role"])
		assert.Equal(t, "hello", first["text"])
	})

	t.Run("snapshot reports message count", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/snapshot/s1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["snapshotted"])
		assert.Equal(t, float64(2), body["countMessages"])
	})
}

func TestChatValidation(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message":"no session id"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("preflight allowed for configured origin", func(t *testing.T) {
		t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")
		router := newTestRouter(t)

		req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
		req.Header.Set("Origin", "https://app.example.com")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")
		router := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty config allows any origin", func(t *testing.T) {
		t.Setenv("ALLOWED_ORIGINS", "")
		router := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
