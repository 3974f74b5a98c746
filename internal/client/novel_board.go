package client

import (
	"context"

	"novel-board/internal/models"
	"novel-board/internal/narrative"
)

// NovelBoardClient - HTTP-клиент API генерации и доски.
// Реализует narrative.Generator, поэтому Runner может работать через сеть.
type NovelBoardClient interface {
	narrative.Generator
	GenerateTitle(ctx context.Context, story string) (string, error)

	SubmitPost(ctx context.Context, post *models.Post) (int64, error)
	ListPosts(ctx context.Context) ([]models.PostSummary, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64, password string) error
}
