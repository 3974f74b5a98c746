package interfaces

import (
	"context"

	"novel-board/internal/models"
)

// StoryService генерирует фрагменты интерактивной истории.
type StoryService interface {
	GenerateIntro(ctx context.Context, characterName string) (string, error)
	GenerateStory(ctx context.Context, fullStory, lastChoice string) (string, error)
	GenerateEnding(ctx context.Context, fullStory string) (string, error)
	// GenerateChoices возвращает варианты одной строкой, по одному на строку.
	GenerateChoices(ctx context.Context, lastStory string) (string, error)
	GenerateTitle(ctx context.Context, story string) (string, error)
}

// BoardService - операции доски поверх PostRepository с валидацией.
type BoardService interface {
	SubmitPost(ctx context.Context, post *models.Post) (int64, error)
	ListPosts(ctx context.Context) ([]models.PostSummary, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64, password string) error
}
