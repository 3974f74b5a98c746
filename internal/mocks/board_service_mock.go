package mocks

import (
	"context"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockBoardService is a mock type for the BoardService type
type MockBoardService struct {
	mock.Mock
}

// SubmitPost provides a mock function with given fields: ctx, post
func (_m *MockBoardService) SubmitPost(ctx context.Context, post *models.Post) (int64, error) {
	ret := _m.Called(ctx, post)
	return ret.Get(0).(int64), ret.Error(1)
}

// ListPosts provides a mock function with given fields: ctx
func (_m *MockBoardService) ListPosts(ctx context.Context) ([]models.PostSummary, error) {
	ret := _m.Called(ctx)

	var r0 []models.PostSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PostSummary)
	}
	return r0, ret.Error(1)
}

// GetPost provides a mock function with given fields: ctx, id
func (_m *MockBoardService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Post)
	}
	return r0, ret.Error(1)
}

// DeletePost provides a mock function with given fields: ctx, id, password
func (_m *MockBoardService) DeletePost(ctx context.Context, id int64, password string) error {
	ret := _m.Called(ctx, id, password)
	return ret.Error(0)
}

// NewMockBoardService creates a new instance of MockBoardService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockBoardService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBoardService {
	m := &MockBoardService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.BoardService = (*MockBoardService)(nil)
