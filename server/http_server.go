package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/resume-chat/db"
	"github.com/SaiNageswarS/resume-chat/services"
	"github.com/gin-gonic/gin"
)

// HTTPServer is thin glue over SessionService: routing, request binding and
// CORS. No session logic lives here.
type HTTPServer struct {
	sessions  *services.SessionService
	localMode bool
}

func ProvideHTTPServer(sessions *services.SessionService, localMode bool) *HTTPServer {
	return &HTTPServer{sessions: sessions, localMode: localMode}
}

type resumeUpdate struct {
	Text string `json:"text"`
}

type chatTurnRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware())

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/llm/status", s.llmStatus)
	r.GET("/session/:sessionId", s.getSession)
	r.PUT("/resume/:sessionId", s.putResume)
	r.POST("/chat", s.postChat)
	r.POST("/snapshot/:sessionId", s.postSnapshot)

	return r
}

func (s *HTTPServer) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "hint": "See /health, /session/{id}, /chat"})
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "ts": db.NowMs(), "localMode": s.localMode})
}

func (s *HTTPServer) llmStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessions.LLMStatus())
}

func (s *HTTPServer) getSession(c *gin.Context) {
	view, err := s.sessions.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *HTTPServer) putResume(c *gin.Context) {
	var body resumeUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedAt, err := s.sessions.SaveResume(c.Request.Context(), c.Param("sessionId"), body.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true, "updatedAt": updatedAt})
}

func (s *HTTPServer) postChat(c *gin.Context) {
	var req chatTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := s.sessions.AppendChatTurn(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assistantMessage": reply})
}

func (s *HTTPServer) postSnapshot(c *gin.Context) {
	count, err := s.sessions.SnapshotSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshotted": true, "countMessages": count})
}

// corsMiddleware allows the origins listed in ALLOWED_ORIGINS (comma
// separated), or any origin when the list is empty or contains "*".
func corsMiddleware() gin.HandlerFunc {
	var allowed []string
	allowAll := true

	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			allowAll = true
			allowed = nil
			break
		}
		allowed = append(allowed, o)
		allowAll = false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			ok := allowAll
			for _, o := range allowed {
				if o == origin {
					ok = true
					break
				}
			}
			if ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
