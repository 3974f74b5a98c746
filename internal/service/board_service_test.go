package service

import (
	"context"
	"errors"
	"testing"

	"novel-board/internal/mocks"
	"novel-board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBoardService(t *testing.T) (*boardServiceImpl, *mocks.MockPostRepository) {
	repo := mocks.NewMockPostRepository(t)
	return NewBoardService(repo, zap.NewNop()), repo
}

func TestBoardService_SubmitPost_KeepsClientTimestamp(t *testing.T) {
	for _, ts := range []string{
		"2024-04-30T08:00:00.123Z",
		"2024-05-01T12:30:00",
		"2024-05-01",
	} {
		t.Run(ts, func(t *testing.T) {
			svc, repo := newTestBoardService(t)
			repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
				return p.Timestamp == ts && p.Title == "제목" && p.Password == "pw"
			})).Return(int64(3), nil).Once()

			id, err := svc.SubmitPost(context.Background(), &models.Post{
				Title: "제목", Content: "내용", Author: "민수", Password: "pw", Timestamp: ts,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(3), id)
		})
	}
}

func TestBoardService_SubmitPost_Validation(t *testing.T) {
	svc, repo := newTestBoardService(t)
	ctx := context.Background()

	for _, p := range []models.Post{
		{Content: "c", Author: "a", Password: "p", Timestamp: "ts"},
		{Title: "t", Author: "a", Password: "p", Timestamp: "ts"},
		{Title: "t", Content: "c", Password: "p", Timestamp: "ts"},
		{Title: "t", Content: "c", Author: "a", Timestamp: "ts"},
		{Title: "t", Content: "c", Author: "a", Password: "p"},
		{Title: "t", Content: "c", Author: "a", Password: "p", Timestamp: "   "},
	} {
		_, err := svc.SubmitPost(ctx, &p)
		assert.ErrorIs(t, err, models.ErrBadRequest)
		assert.EqualError(t, err, msgPostFieldsRequired)
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBoardService_SubmitPost_StoreFailure(t *testing.T) {
	svc, repo := newTestBoardService(t)
	storeErr := errors.Join(models.ErrStoreFailure, errors.New("disk full"))
	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), storeErr).Once()

	_, err := svc.SubmitPost(context.Background(), &models.Post{Title: "t", Content: "c", Author: "a", Password: "p", Timestamp: "ts"})
	assert.ErrorIs(t, err, models.ErrStoreFailure)
}

func TestBoardService_ListAndGet(t *testing.T) {
	svc, repo := newTestBoardService(t)
	ctx := context.Background()

	summaries := []models.PostSummary{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}
	repo.On("List", mock.Anything).Return(summaries, nil).Once()
	repo.On("GetByID", mock.Anything, int64(2)).Return(&models.Post{ID: 2, Title: "b"}, nil).Once()

	list, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, summaries, list)

	post, err := svc.GetPost(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", post.Title)

	_, err = svc.GetPost(ctx, 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBoardService_DeletePost(t *testing.T) {
	svc, repo := newTestBoardService(t)
	ctx := context.Background()

	repo.On("DeleteWithPassword", mock.Anything, int64(5), "right").Return(nil).Once()
	repo.On("DeleteWithPassword", mock.Anything, int64(5), "wrong").Return(models.ErrForbidden).Once()
	repo.On("DeleteWithPassword", mock.Anything, int64(9), "any").Return(models.ErrNotFound).Once()

	assert.NoError(t, svc.DeletePost(ctx, 5, "right"))
	assert.ErrorIs(t, svc.DeletePost(ctx, 5, "wrong"), models.ErrForbidden)
	assert.ErrorIs(t, svc.DeletePost(ctx, 9, "any"), models.ErrNotFound)

	err := svc.DeletePost(ctx, 5, "")
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.EqualError(t, err, msgPasswordRequired)
}
