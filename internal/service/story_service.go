package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"
	"novel-board/internal/prompts"
	"novel-board/pkg/ai"

	"go.uber.org/zap"
)

const (
	msgIntroFieldsRequired   = "모든 스토리 요소가 필요합니다."
	msgStoryFieldsRequired   = "전체 스토리와 마지막 선택이 필요합니다."
	msgEndingFieldsRequired  = "전체 스토리가 필요합니다."
	msgChoicesFieldsRequired = "마지막 스토리가 필요합니다."
	msgTitleFieldsRequired   = "스토리가 필요합니다."
)

type storyServiceImpl struct {
	ai     ai.Client
	logger *zap.Logger
}

var _ interfaces.StoryService = (*storyServiceImpl)(nil)

// NewStoryService создает сервис генерации истории.
func NewStoryService(client ai.Client, logger *zap.Logger) *storyServiceImpl {
	return &storyServiceImpl{
		ai:     client,
		logger: logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) GenerateIntro(ctx context.Context, characterName string) (string, error) {
	if isBlank(characterName) {
		return "", models.NewValidationError(msgIntroFieldsRequired)
	}
	return s.generate(ctx, "intro", prompts.Intro(characterName))
}

func (s *storyServiceImpl) GenerateStory(ctx context.Context, fullStory, lastChoice string) (string, error) {
	if isBlank(fullStory) || isBlank(lastChoice) {
		return "", models.NewValidationError(msgStoryFieldsRequired)
	}
	return s.generate(ctx, "story", prompts.Story(fullStory, lastChoice))
}

func (s *storyServiceImpl) GenerateEnding(ctx context.Context, fullStory string) (string, error) {
	if isBlank(fullStory) {
		return "", models.NewValidationError(msgEndingFieldsRequired)
	}
	return s.generate(ctx, "ending", prompts.Ending(fullStory))
}

func (s *storyServiceImpl) GenerateChoices(ctx context.Context, lastStory string) (string, error) {
	if isBlank(lastStory) {
		return "", models.NewValidationError(msgChoicesFieldsRequired)
	}
	return s.generate(ctx, "choices", prompts.Choices(lastStory))
}

func (s *storyServiceImpl) GenerateTitle(ctx context.Context, story string) (string, error) {
	if isBlank(story) {
		return "", models.NewValidationError(msgTitleFieldsRequired)
	}
	return s.generate(ctx, "title", prompts.Title(story))
}

func (s *storyServiceImpl) generate(ctx context.Context, kind string, messages []ai.Message) (string, error) {
	log := s.logger.With(zap.String("kind", kind))

	text, err := s.ai.Generate(ctx, messages)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Info("Generation cancelled by caller", zap.Error(err))
			return "", err
		}
		log.Error("Generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %s: %w", models.ErrGenerationFailed, kind, err)
	}

	log.Debug("Generation succeeded", zap.Int("length", len(text)))
	return text, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
