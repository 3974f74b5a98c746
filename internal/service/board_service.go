package service

import (
	"context"
	"strings"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"

	"go.uber.org/zap"
)

const (
	msgPostFieldsRequired = "모든 필드를 입력해야 합니다."
	msgPasswordRequired   = "비밀번호가 필요합니다."
)

type boardServiceImpl struct {
	repo   interfaces.PostRepository
	logger *zap.Logger
}

var _ interfaces.BoardService = (*boardServiceImpl)(nil)

// NewBoardService создает сервис доски.
func NewBoardService(repo interfaces.PostRepository, logger *zap.Logger) *boardServiceImpl {
	return &boardServiceImpl{
		repo:   repo,
		logger: logger.Named("BoardService"),
	}
}

// SubmitPost проверяет наличие всех полей и сохраняет пост.
// timestamp хранится как есть, в виде текста, присланного клиентом.
func (s *boardServiceImpl) SubmitPost(ctx context.Context, post *models.Post) (int64, error) {
	if isBlank(post.Title) || isBlank(post.Content) || isBlank(post.Author) ||
		post.Password == "" || isBlank(post.Timestamp) {
		return 0, models.NewValidationError(msgPostFieldsRequired)
	}

	toSave := *post
	toSave.ID = 0
	toSave.Timestamp = strings.TrimSpace(post.Timestamp)

	id, err := s.repo.Create(ctx, &toSave)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Post submitted", zap.Int64("post_id", id), zap.String("author", toSave.Author))
	return id, nil
}

func (s *boardServiceImpl) ListPosts(ctx context.Context) ([]models.PostSummary, error) {
	return s.repo.List(ctx)
}

func (s *boardServiceImpl) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	if id <= 0 {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// DeletePost удаляет пост, если пароль совпадает с сохраненным.
func (s *boardServiceImpl) DeletePost(ctx context.Context, id int64, password string) error {
	if password == "" {
		return models.NewValidationError(msgPasswordRequired)
	}
	if id <= 0 {
		return models.ErrNotFound
	}
	return s.repo.DeleteWithPassword(ctx, id, password)
}
