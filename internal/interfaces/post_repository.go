package interfaces

import (
	"context"

	"novel-board/internal/models"
)

// PostRepository - хранилище постов доски.
type PostRepository interface {
	// Create сохраняет пост и возвращает его ID.
	Create(ctx context.Context, post *models.Post) (int64, error)
	// List возвращает краткие записи, новые сверху.
	List(ctx context.Context) ([]models.PostSummary, error)
	// GetByID возвращает пост целиком или models.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// DeleteWithPassword удаляет пост, если пароль совпадает.
	// models.ErrNotFound - поста нет, models.ErrForbidden - пароль неверный.
	DeleteWithPassword(ctx context.Context, id int64, password string) error
}
