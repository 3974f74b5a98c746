package database

import (
	"context"
	"encoding/json"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"

	"github.com/stretchr/testify/suite"
)

// postRepositorySuite - общие проверки для всех реализаций PostRepository.
// Встраивающий suite обязан выставить repo в SetupTest на пустое хранилище.
type postRepositorySuite struct {
	suite.Suite
	repo interfaces.PostRepository
}

func (s *postRepositorySuite) mustCreate(p models.Post) int64 {
	id, err := s.repo.Create(context.Background(), &p)
	s.Require().NoError(err)
	s.Require().Positive(id)
	return id
}

func (s *postRepositorySuite) TestCreateAndGetRoundTrip() {
	ctx := context.Background()
	in := models.Post{
		Title:     "미래에서 온 나",
		Content:   "타임머신은 결국 완성되었다.\n그리고...",
		Author:    "민수",
		Password:  "Secret-1",
		Timestamp: "2024-05-01T12:30:00.000Z",
	}
	id := s.mustCreate(in)

	got, err := s.repo.GetByID(ctx, id)
	s.Require().NoError(err)
	in.ID = id
	s.Equal(in, *got)
}

func (s *postRepositorySuite) TestCreateAssignsUniqueIDs() {
	a := s.mustCreate(models.Post{Title: "a", Content: "c", Author: "x", Password: "p", Timestamp: "2024-01-01T00:00:00Z"})
	b := s.mustCreate(models.Post{Title: "b", Content: "c", Author: "x", Password: "p", Timestamp: "2024-01-01T00:00:00Z"})
	s.NotEqual(a, b)
}

func (s *postRepositorySuite) TestListEmpty() {
	posts, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.NotNil(posts)
	s.Empty(posts)
}

func (s *postRepositorySuite) TestListOrderedByTimestampDesc() {
	oldest := s.mustCreate(models.Post{Title: "old", Content: "c", Author: "a", Password: "p", Timestamp: "2024-01-01T00:00:00.000Z"})
	newest := s.mustCreate(models.Post{Title: "new", Content: "c", Author: "b", Password: "p", Timestamp: "2024-03-01T00:00:00.000Z"})
	middle := s.mustCreate(models.Post{Title: "mid", Content: "c", Author: "c", Password: "p", Timestamp: "2024-02-01T00:00:00.000Z"})
	// Одинаковое время: выше тот, что создан позже
	tieLater := s.mustCreate(models.Post{Title: "tie", Content: "c", Author: "d", Password: "p", Timestamp: "2024-02-01T00:00:00.000Z"})

	posts, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(posts, 4)

	ids := []int64{posts[0].ID, posts[1].ID, posts[2].ID, posts[3].ID}
	s.Equal([]int64{newest, tieLater, middle, oldest}, ids)
	s.Equal(models.PostSummary{ID: newest, Title: "new", Author: "b", Timestamp: "2024-03-01T00:00:00.000Z"}, posts[0])
}

func (s *postRepositorySuite) TestListExposesOnlySummaryFields() {
	s.mustCreate(models.Post{Title: "t", Content: "hidden content", Author: "a", Password: "hidden-pass", Timestamp: "2024-01-01T00:00:00Z"})

	posts, err := s.repo.List(context.Background())
	s.Require().NoError(err)

	raw, err := json.Marshal(posts)
	s.Require().NoError(err)
	var decoded []map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Require().Len(decoded, 1)
	s.ElementsMatch([]string{"id", "title", "author", "timestamp"}, keys(decoded[0]))
	s.NotContains(string(raw), "hidden")
}

func (s *postRepositorySuite) TestGetMissing() {
	_, err := s.repo.GetByID(context.Background(), 424242)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *postRepositorySuite) TestDeleteWithCorrectPassword() {
	ctx := context.Background()
	id := s.mustCreate(models.Post{Title: "t", Content: "c", Author: "a", Password: "right", Timestamp: "2024-01-01T00:00:00Z"})

	s.Require().NoError(s.repo.DeleteWithPassword(ctx, id, "right"))

	_, err := s.repo.GetByID(ctx, id)
	s.ErrorIs(err, models.ErrNotFound)
	posts, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Empty(posts)
}

func (s *postRepositorySuite) TestDeleteWithWrongPassword() {
	ctx := context.Background()
	id := s.mustCreate(models.Post{Title: "t", Content: "c", Author: "a", Password: "Right", Timestamp: "2024-01-01T00:00:00Z"})

	for _, wrong := range []string{"right", "Right ", "", "wrong"} {
		err := s.repo.DeleteWithPassword(ctx, id, wrong)
		s.ErrorIs(err, models.ErrForbidden, "password %q", wrong)
	}

	got, err := s.repo.GetByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Right", got.Password)
}

func (s *postRepositorySuite) TestDeleteMissing() {
	err := s.repo.DeleteWithPassword(context.Background(), 424242, "any")
	s.ErrorIs(err, models.ErrNotFound)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
