package mocks

import (
	"context"

	"novel-board/internal/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

// GenerateIntro provides a mock function with given fields: ctx, characterName
func (_m *MockStoryService) GenerateIntro(ctx context.Context, characterName string) (string, error) {
	ret := _m.Called(ctx, characterName)
	return ret.String(0), ret.Error(1)
}

// GenerateStory provides a mock function with given fields: ctx, fullStory, lastChoice
func (_m *MockStoryService) GenerateStory(ctx context.Context, fullStory string, lastChoice string) (string, error) {
	ret := _m.Called(ctx, fullStory, lastChoice)
	return ret.String(0), ret.Error(1)
}

// GenerateEnding provides a mock function with given fields: ctx, fullStory
func (_m *MockStoryService) GenerateEnding(ctx context.Context, fullStory string) (string, error) {
	ret := _m.Called(ctx, fullStory)
	return ret.String(0), ret.Error(1)
}

// GenerateChoices provides a mock function with given fields: ctx, lastStory
func (_m *MockStoryService) GenerateChoices(ctx context.Context, lastStory string) (string, error) {
	ret := _m.Called(ctx, lastStory)
	return ret.String(0), ret.Error(1)
}

// GenerateTitle provides a mock function with given fields: ctx, story
func (_m *MockStoryService) GenerateTitle(ctx context.Context, story string) (string, error) {
	ret := _m.Called(ctx, story)
	return ret.String(0), ret.Error(1)
}

// NewMockStoryService creates a new instance of MockStoryService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockStoryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStoryService {
	m := &MockStoryService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.StoryService = (*MockStoryService)(nil)
