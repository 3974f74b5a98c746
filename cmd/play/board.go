package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"novel-board/internal/models"
)

const boardUsage = "usage: play board list | read <id> | delete <id>"

// runBoard выполняет подкоманду board.
func (a *app) runBoard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(boardUsage)
	}

	switch args[0] {
	case "list":
		return a.listPosts(ctx)
	case "read", "delete":
		if len(args) < 2 {
			return errors.New(boardUsage)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post id %q", args[1])
		}
		if args[0] == "read" {
			return a.readPost(ctx, id)
		}
		return a.deletePost(ctx, id)
	default:
		return errors.New(boardUsage)
	}
}

func (a *app) listPosts(ctx context.Context) error {
	posts, err := a.board.ListPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		a.println("게시물이 없습니다.")
		return nil
	}
	for _, p := range posts {
		a.printf("%4d  %s  (%s, %s)\n", p.ID, p.Title, p.Author, p.Timestamp)
	}
	return nil
}

func (a *app) readPost(ctx context.Context, id int64) error {
	post, err := a.board.GetPost(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		a.println("게시물이 존재하지 않습니다.")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("%s\n작성자: %s\n작성일: %s\n", post.Title, post.Author, post.Timestamp)
	a.printPassage(post.Content)
	return nil
}

func (a *app) deletePost(ctx context.Context, id int64) error {
	password, err := a.askNonEmpty("비밀번호: ")
	if err != nil {
		return err
	}

	err = a.board.DeletePost(ctx, id, password)
	switch {
	case err == nil:
		a.println("게시물이 삭제되었습니다.")
	case errors.Is(err, models.ErrForbidden):
		a.println("비밀번호가 일치하지 않습니다.")
	case errors.Is(err, models.ErrNotFound):
		a.println("게시물을 찾을 수 없습니다.")
	default:
		return err
	}
	return nil
}
