package handler

import (
	"net/http"
	"strconv"

	"novel-board/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parsePostID разбирает :id. Нечисловой id неотличим от отсутствующего поста.
func parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// @Summary Публикация истории на доске
// @Tags board
// @Accept json
// @Produce json
// @Param request body submitPostRequest true "Пост"
// @Success 200 {object} models.SubmitPostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/submit-post [post]
func (h *Handler) submitPost(c *gin.Context) {
	var req submitPostRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgSubmitPostFailed)
		return
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Password:  req.Password,
		Timestamp: req.Timestamp,
	}
	id, err := h.board.SubmitPost(c.Request.Context(), post)
	if err != nil {
		handleServiceError(c, err, msgSubmitPostFailed)
		return
	}

	postsSubmittedTotal.Inc()
	c.JSON(http.StatusOK, models.SubmitPostResponse{Success: true, ID: id})
}

// @Summary Список постов (без содержимого)
// @Tags board
// @Produce json
// @Success 200 {array} models.PostSummary
// @Router /api/get-posts [get]
func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.board.ListPosts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, msgListPostsFailed)
		return
	}
	if posts == nil {
		posts = []models.PostSummary{}
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary Пост целиком
// @Tags board
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /api/get-post/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: msgPostNotFound})
		return
	}

	post, err := h.board.GetPost(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, msgListPostsFailed)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary Удаление поста по паролю
// @Tags board
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} models.DeletePostResponse
// @Failure 400 {object} models.DeletePostResponse
// @Failure 403 {object} models.DeletePostResponse
// @Failure 404 {object} models.DeletePostResponse
// @Router /api/delete-post/{id} [post]
func (h *Handler) deletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		postDeletionsTotal.WithLabelValues("not_found").Inc()
		c.AbortWithStatusJSON(http.StatusNotFound, models.DeletePostResponse{Success: false, Message: msgDeleteNotFound})
		return
	}

	var req deletePostRequest
	if err := bindJSON(c, &req); err != nil {
		postDeletionsTotal.WithLabelValues("bad_request").Inc()
		c.AbortWithStatusJSON(http.StatusBadRequest, models.DeletePostResponse{Success: false, Message: msgInvalidBody})
		return
	}

	if err := h.board.DeletePost(c.Request.Context(), id, req.Password); err != nil {
		postDeletionsTotal.WithLabelValues("error").Inc()
		handleDeleteError(c, err)
		return
	}

	postDeletionsTotal.WithLabelValues("deleted").Inc()
	h.logger.Info("Post deleted", zap.Int64("postID", id))
	c.JSON(http.StatusOK, models.DeletePostResponse{Success: true, Message: msgDeleted})
}
