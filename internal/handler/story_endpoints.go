package handler

import (
	"net/http"

	"novel-board/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgIntroFailed   = "인트로 생성 중 오류 발생"
	msgStoryFailed   = "스토리 생성 중 오류 발생"
	msgEndingFailed  = "엔딩 생성 중 오류 발생"
	msgChoicesFailed = "선택지 생성 중 오류 발생"
	msgTitleFailed   = "제목 생성 중 오류가 발생했습니다."
)

// @Summary Генерация вступления
// @Tags story
// @Accept json
// @Produce json
// @Param request body generateIntroRequest true "Имя персонажа"
// @Success 200 {object} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/generate-intro [post]
func (h *Handler) generateIntro(c *gin.Context) {
	var req generateIntroRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgIntroFailed)
		return
	}

	result, err := h.story.GenerateIntro(c.Request.Context(), req.CharacterName)
	if err != nil {
		storyRequestsTotal.WithLabelValues("intro", "error").Inc()
		handleServiceError(c, err, msgIntroFailed)
		return
	}

	storyRequestsTotal.WithLabelValues("intro", "success").Inc()
	c.JSON(http.StatusOK, models.ResultResponse{Result: result})
}

// @Summary Продолжение истории по выбранному варианту
// @Tags story
// @Router /api/generate-story [post]
func (h *Handler) generateStory(c *gin.Context) {
	var req generateStoryRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgStoryFailed)
		return
	}

	result, err := h.story.GenerateStory(c.Request.Context(), req.FullStory, req.LastChoice)
	if err != nil {
		storyRequestsTotal.WithLabelValues("story", "error").Inc()
		handleServiceError(c, err, msgStoryFailed)
		return
	}

	storyRequestsTotal.WithLabelValues("story", "success").Inc()
	c.JSON(http.StatusOK, models.ResultResponse{Result: result})
}

// @Summary Генерация концовки
// @Tags story
// @Router /api/generate-ending [post]
func (h *Handler) generateEnding(c *gin.Context) {
	var req generateEndingRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgEndingFailed)
		return
	}

	result, err := h.story.GenerateEnding(c.Request.Context(), req.FullStory)
	if err != nil {
		storyRequestsTotal.WithLabelValues("ending", "error").Inc()
		handleServiceError(c, err, msgEndingFailed)
		return
	}

	storyRequestsTotal.WithLabelValues("ending", "success").Inc()
	c.JSON(http.StatusOK, models.ResultResponse{Result: result})
}

// @Summary Генерация вариантов выбора (по одному на строку)
// @Tags story
// @Router /api/generate-choice [post]
func (h *Handler) generateChoices(c *gin.Context) {
	var req generateChoicesRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgChoicesFailed)
		return
	}

	result, err := h.story.GenerateChoices(c.Request.Context(), req.LastStory)
	if err != nil {
		storyRequestsTotal.WithLabelValues("choices", "error").Inc()
		handleServiceError(c, err, msgChoicesFailed)
		return
	}

	storyRequestsTotal.WithLabelValues("choices", "success").Inc()
	c.JSON(http.StatusOK, models.ResultResponse{Result: result})
}

// @Summary Генерация заголовка для готовой истории
// @Tags story
// @Router /api/generate-title [post]
func (h *Handler) generateTitle(c *gin.Context) {
	var req generateTitleRequest
	if err := bindJSON(c, &req); err != nil {
		handleServiceError(c, err, msgTitleFailed)
		return
	}

	title, err := h.story.GenerateTitle(c.Request.Context(), req.Story)
	if err != nil {
		storyRequestsTotal.WithLabelValues("title", "error").Inc()
		handleServiceError(c, err, msgTitleFailed)
		return
	}

	storyRequestsTotal.WithLabelValues("title", "success").Inc()
	c.JSON(http.StatusOK, models.TitleResponse{Title: title})
}
