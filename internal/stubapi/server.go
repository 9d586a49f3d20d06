// Package stubapi is a self-contained stand-in for the recruitment
// backend: enough of the auth, resource and socket surface to run the
// client against locally, seeded with fixed data. It is a development
// fixture, not a real server.
package stubapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"recruitflow-go/internal/platform/logging"
)

const seedPassword = "recruitflow"

// Server serves the stub backend. All state lives in memory.
type Server struct {
	logger *logging.Logger
	issuer tokenIssuer
	engine *gin.Engine

	upgrader     websocket.Upgrader
	pushInterval time.Duration

	mu            sync.Mutex
	users         []map[string]any
	candidates    []map[string]any
	processes     []map[string]any
	clients       []map[string]any
	notifications []map[string]any
	nextID        int
}

// New builds a stub server with seeded data. pushInterval controls how
// often the socket endpoint pushes notification frames.
func New(logger *logging.Logger, pushInterval time.Duration) *Server {
	if pushInterval <= 0 {
		pushInterval = 5 * time.Second
	}

	s := &Server{
		logger:        logger,
		issuer:        tokenIssuer{secret: []byte(uuid.NewString())},
		upgrader:      websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		pushInterval:  pushInterval,
		users:         seedUsers(),
		candidates:    seedCandidates(),
		processes:     seedProcesses(),
		clients:       seedClients(),
		notifications: seedNotifications(),
		nextID:        100,
	}
	s.engine = s.buildEngine()
	return s
}

// Handler exposes the router for httptest and for cmd wiring.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.loggingMiddleware())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-CSRFToken", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.POST("/api/auth/token/", s.handleLogin)
	engine.POST("/api/auth/token/refresh/", s.handleRefresh)
	engine.POST("/api/accounts/logout/", s.handleLogout)
	engine.GET("/api/csrf/", s.handleCSRF)
	engine.GET("/ws/notifications/", s.handleSocket)

	secured := engine.Group("/api")
	secured.Use(s.authMiddleware())

	secured.GET("/candidates/candidates/", s.handleListCandidates)
	secured.POST("/candidates/candidates/", s.handleCreateCandidate)
	secured.GET("/candidates/candidates/:id/", s.byID(&s.candidates))
	secured.PUT("/candidates/candidates/:id/", s.updateByID(&s.candidates))
	secured.DELETE("/candidates/candidates/:id/", s.deleteByID(&s.candidates))
	secured.POST("/candidates/candidates/:id/upload-cv/", s.handleUploadCV)
	secured.POST("/candidates/candidates/:id/analyze-cv/", s.handleAnalyzeCV)

	secured.GET("/profiles/profiles/", s.listCollection(&s.processes, "status", "client", "search", "priority"))
	secured.GET("/profiles/profiles/:id/", s.byID(&s.processes))
	secured.GET("/clients/", s.listCollection(&s.clients, "status", "industry", "search"))
	secured.GET("/clients/:id/", s.byID(&s.clients))
	secured.GET("/accounts/users/", s.listCollection(&s.users, "role", "is_active", "search"))
	secured.GET("/accounts/users/dashboard-stats/", s.handleDashboardStats)

	secured.GET("/notifications/", s.handleListNotifications)
	secured.POST("/notifications/:id/mark-read/", s.handleMarkRead)
	secured.POST("/notifications/mark-all-read/", s.handleMarkAllRead)

	return engine
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.InfoTag("STUB", "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "credenciales no proporcionadas"})
			return
		}
		subject, err := s.issuer.verify(raw, "access")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "token inválido o expirado"})
			return
		}
		c.Set("subject", subject)
		c.Next()
	}
}

// auth

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo de solicitud inválido"})
		return
	}

	s.mu.Lock()
	var user map[string]any
	for _, u := range s.users {
		if u["email"] == body.Identifier {
			user = u
			break
		}
	}
	s.mu.Unlock()

	if user == nil || body.Password != seedPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "credenciales inválidas"})
		return
	}

	access, err := s.issuer.issue(body.Identifier, "access", accessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "no se pudo emitir el token"})
		return
	}
	refresh, err := s.issuer.issue(body.Identifier, "refresh", refreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "no se pudo emitir el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh, "user": user})
}

func (s *Server) handleRefresh(c *gin.Context) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh token requerido"})
		return
	}

	subject, err := s.issuer.verify(body.Refresh, "refresh")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "refresh token inválido"})
		return
	}
	access, err := s.issuer.issue(subject, "access", accessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "no se pudo emitir el token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *Server) handleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleCSRF(c *gin.Context) {
	token := uuid.NewString()
	c.SetCookie("csrftoken", token, 3600, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// resources

func (s *Server) handleListCandidates(c *gin.Context) {
	s.listCollection(&s.candidates, "status", "search", "assigned_to", "profile")(c)
}

func (s *Server) handleCreateCandidate(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo de solicitud inválido"})
		return
	}

	s.mu.Lock()
	s.nextID++
	body["id"] = s.nextID
	body["created_at"] = time.Now().UTC().Format(time.RFC3339)
	s.candidates = append(s.candidates, body)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, body)
}

func (s *Server) handleUploadCV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "archivo requerido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       c.Param("id"),
		"filename": file.Filename,
		"size":     file.Size,
	})
}

func (s *Server) handleAnalyzeCV(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"candidate":   c.Param("id"),
		"ai_summary":  "Perfil sólido con experiencia relevante",
		"match_score": 87,
	})
}

func (s *Server) handleDashboardStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"total_candidates": len(s.candidates),
		"total_processes":  len(s.processes),
		"total_clients":    len(s.clients),
		"unread_notifications": func() int {
			n := 0
			for _, note := range s.notifications {
				if note["is_read"] == false {
					n++
				}
			}
			return n
		}(),
	})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unreadOnly := c.Query("unread") == "true"
	out := make([]map[string]any, 0, len(s.notifications))
	for _, note := range s.notifications {
		if unreadOnly && note["is_read"] == true {
			continue
		}
		if !matchesFilters(note, c, []string{"type"}) {
			continue
		}
		out = append(out, note)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleMarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, note := range s.notifications {
		if note["id"] == id {
			note["is_read"] = true
			c.JSON(http.StatusOK, note)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "notificación no encontrada"})
}

func (s *Server) handleMarkAllRead(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, note := range s.notifications {
		note["is_read"] = true
	}
	c.JSON(http.StatusOK, gin.H{"marked": len(s.notifications)})
}

// generic collection handlers

func (s *Server) listCollection(collection *[]map[string]any, filterKeys ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		out := make([]map[string]any, 0, len(*collection))
		for _, record := range *collection {
			if matchesFilters(record, c, filterKeys) {
				out = append(out, record)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func matchesFilters(record map[string]any, c *gin.Context, keys []string) bool {
	for _, key := range keys {
		want := c.Query(key)
		if want == "" {
			continue
		}
		if key == "search" {
			if !recordContains(record, strings.ToLower(want)) {
				return false
			}
			continue
		}
		if stringify(record[key]) != want {
			return false
		}
	}
	return true
}

func recordContains(record map[string]any, needle string) bool {
	for _, value := range record {
		if text, ok := value.(string); ok && strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func (s *Server) byID(collection *[]map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "id inválido"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, record := range *collection {
			if record["id"] == id {
				c.JSON(http.StatusOK, record)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "recurso no encontrado"})
	}
}

func (s *Server) updateByID(collection *[]map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "id inválido"})
			return
		}
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo de solicitud inválido"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, record := range *collection {
			if record["id"] == id {
				for key, value := range body {
					if key == "id" {
						continue
					}
					record[key] = value
				}
				record["updated_at"] = time.Now().UTC().Format(time.RFC3339)
				c.JSON(http.StatusOK, record)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "recurso no encontrado"})
	}
}

func (s *Server) deleteByID(collection *[]map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "id inválido"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for i, record := range *collection {
			if record["id"] == id {
				*collection = append((*collection)[:i], (*collection)[i+1:]...)
				c.Status(http.StatusNoContent)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "recurso no encontrado"})
	}
}

// socket

func (s *Server) handleSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	s.logger.InfoTag("STUB", "socket client connected")
	go s.pushLoop(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			conn.Close()
			return
		}
	}
}

func (s *Server) pushLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()

	i := 0
	for range ticker.C {
		s.mu.Lock()
		if len(s.notifications) == 0 {
			s.mu.Unlock()
			continue
		}
		note := s.notifications[i%len(s.notifications)]
		i++
		frame := gin.H{
			"type":    note["type"],
			"id":      note["id"],
			"title":   note["title"],
			"message": note["message"],
		}
		s.mu.Unlock()

		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}
