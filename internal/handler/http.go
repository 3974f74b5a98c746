package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler обслуживает HTTP API генерации истории и доски.
type Handler struct {
	story     interfaces.StoryService
	board     interfaces.BoardService
	staticDir string
	logger    *zap.Logger
}

func NewHandler(story interfaces.StoryService, board interfaces.BoardService, staticDir string, logger *zap.Logger) *Handler {
	return &Handler{
		story:     story,
		board:     board,
		staticDir: staticDir,
		logger:    logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты. generationLimiter может быть nil.
func (h *Handler) RegisterRoutes(router *gin.Engine, generationLimiter gin.HandlerFunc) {
	generation := router.Group("/api")
	if generationLimiter != nil {
		generation.Use(generationLimiter)
	}
	{
		generation.POST("/generate-intro", h.generateIntro)
		generation.POST("/generate-story", h.generateStory)
		generation.POST("/generate-ending", h.generateEnding)
		generation.POST("/generate-choice", h.generateChoices)
		generation.POST("/generate-title", h.generateTitle)
	}

	board := router.Group("/api")
	{
		board.POST("/submit-post", h.submitPost)
		board.GET("/get-posts", h.listPosts)
		board.GET("/get-post/:id", h.getPost)
		board.POST("/delete-post/:id", h.deletePost)
	}

	router.GET("/health", h.health)
	router.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if h.staticDir == "" {
		return
	}
	if info, err := os.Stat(h.staticDir); err != nil || !info.IsDir() {
		h.logger.Warn("Static directory not found, static routes disabled", zap.String("dir", h.staticDir))
		return
	}
	router.GET("/", h.servePage("index.html"))
	router.GET("/board", h.servePage("board.html"))
	router.NoRoute(h.serveStatic)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

func (h *Handler) servePage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(h.staticDir, name))
	}
}

// serveStatic отдает файлы из staticDir для неизвестных GET-маршрутов.
func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
		return
	}

	// path.Clean от корня не дает выйти за пределы staticDir
	rel := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	full := filepath.Join(h.staticDir, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
		return
	}
	c.File(full)
}
