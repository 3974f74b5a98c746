package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"novel-board/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidBody      = "잘못된 요청 형식입니다."
	msgPostNotFound     = "게시물이 존재하지 않습니다."
	msgDeleteNotFound   = "게시물을 찾을 수 없습니다."
	msgDeleteForbidden  = "비밀번호가 일치하지 않습니다."
	msgDeleteStoreError = "DB 오류 발생"
	msgDeleted          = "게시물이 삭제되었습니다."
	msgListPostsFailed  = "게시물 조회 중 오류 발생"
	msgSubmitPostFailed = "게시물 등록 중 오류 발생"
)

// handleServiceError отвечает клиенту по ошибке сервиса. internalMsg уходит клиенту при 5xx,
// подробности только в лог.
func handleServiceError(c *gin.Context, err error, internalMsg string) {
	var statusCode int
	var message string
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		message = validationErr.Message
	case errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		message = msgInvalidBody
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		message = msgPostNotFound
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		message = msgDeleteForbidden
	default:
		// ErrGenerationFailed, ErrStoreFailure и все непредвиденное
		_ = c.Error(err)
		statusCode = http.StatusInternalServerError
		message = internalMsg
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message})
}

// handleDeleteError отвечает в формате {success, message}, который ждет клиент доски.
func handleDeleteError(c *gin.Context, err error) {
	var statusCode int
	var message string
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		message = validationErr.Message
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		message = msgDeleteNotFound
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		message = msgDeleteForbidden
	default:
		_ = c.Error(err)
		statusCode = http.StatusInternalServerError
		message = msgDeleteStoreError
	}

	c.AbortWithStatusJSON(statusCode, models.DeletePostResponse{Success: false, Message: message})
}

// bindJSON читает тело запроса. Пустое тело равносильно пустому объекту.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s(%s=%s)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		}
		return models.NewValidationError("입력값이 너무 깁니다: " + strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %w", models.ErrBadRequest, err)
}
