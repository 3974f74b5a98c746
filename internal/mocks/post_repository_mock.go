package mocks

import (
	"context"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock type for the PostRepository type
type MockPostRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, post
func (_m *MockPostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	ret := _m.Called(ctx, post)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, *models.Post) int64); ok {
		r0 = rf(ctx, post)
	} else {
		r0 = ret.Get(0).(int64)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx
func (_m *MockPostRepository) List(ctx context.Context) ([]models.PostSummary, error) {
	ret := _m.Called(ctx)

	var r0 []models.PostSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PostSummary)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Post)
	}

	return r0, ret.Error(1)
}

// DeleteWithPassword provides a mock function with given fields: ctx, id, password
func (_m *MockPostRepository) DeleteWithPassword(ctx context.Context, id int64, password string) error {
	ret := _m.Called(ctx, id, password)
	return ret.Error(0)
}

// NewMockPostRepository creates a new instance of MockPostRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPostRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPostRepository {
	m := &MockPostRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.PostRepository = (*MockPostRepository)(nil)
