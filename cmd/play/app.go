package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"
	"novel-board/internal/narrative"

	"go.uber.org/zap"
)

const (
	separator       = "--------------------------------------------------"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var errInputClosed = errors.New("input closed")

// app - терминальный интерфейс к истории и доске.
type app struct {
	in     *bufio.Scanner
	out    io.Writer
	story  interfaces.StoryService
	board  interfaces.BoardService
	steps  int
	pause  time.Duration
	share  bool
	now    func() time.Time
	logger *zap.Logger
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// ask печатает приглашение и читает одну строку ввода.
func (a *app) ask(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// askNonEmpty повторяет вопрос, пока не получит непустую строку.
func (a *app) askNonEmpty(prompt string) (string, error) {
	for {
		answer, err := a.ask(prompt)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

func (a *app) confirm(prompt string) (bool, error) {
	answer, err := a.ask(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "예", "네":
		return true, nil
	default:
		return false, nil
	}
}

func (a *app) progress(eff narrative.Effect) {
	switch eff.Kind {
	case narrative.EffectGenerateIntro:
		a.println("인트로 생성 중...")
	case narrative.EffectGenerateStory:
		a.println("스토리 생성 중...")
	case narrative.EffectGenerateChoices:
		a.println("선택지 생성 중...")
	case narrative.EffectGenerateEnding:
		a.println("엔딩 생성 중...")
	}
}

func (a *app) printPassage(text string) {
	a.println(separator)
	a.println(text)
	a.println(separator)
}

// play проводит одну историю от имени героя до концовки.
func (a *app) play(ctx context.Context) error {
	runner := narrative.NewRunner(a.story,
		narrative.WithPause(a.pause),
		narrative.WithEffectHook(a.progress),
		narrative.WithLogger(a.logger),
	)

	var (
		s   narrative.Session
		err error
	)
	for {
		name, askErr := a.askNonEmpty("주인공 이름을 입력하세요: ")
		if askErr != nil {
			return askErr
		}
		s, err = runner.Dispatch(ctx, narrative.Session{}, narrative.Start{CharacterName: name, TotalSteps: a.steps})
		if err == nil {
			break
		}
		if !errors.Is(err, narrative.ErrCharacterNameRequired) {
			return err
		}
	}

	shown := ""
	for {
		if s.LastPassage != shown && s.Phase != narrative.PhaseComplete {
			a.printPassage(s.LastPassage)
			shown = s.LastPassage
		}

		switch s.Phase {
		case narrative.PhaseComplete:
			a.println("[엔딩]")
			a.printPassage(s.Ending)
			if a.share {
				return a.shareStory(ctx, s)
			}
			return nil
		case narrative.PhaseFailed:
			a.println("이야기 생성에 실패했습니다. 처음부터 다시 시작해주세요.")
			return s.Err
		case narrative.PhaseAwaitingChoice:
			a.printf("[%d/%d]\n", s.Step+1, s.TotalSteps)
			for i, choice := range s.Choices {
				a.printf("  %d. %s\n", i+1, choice)
			}
			index, askErr := a.askChoice(len(s.Choices))
			if askErr != nil {
				return askErr
			}
			next, dispatchErr := runner.Dispatch(ctx, s, narrative.SelectChoice{Index: index})
			if dispatchErr != nil {
				a.printf("선택할 수 없습니다: %v\n", dispatchErr)
				continue
			}
			s = next
		default:
			return fmt.Errorf("unexpected session phase %s", s.Phase)
		}
	}
}

func (a *app) askChoice(count int) (int, error) {
	for {
		answer, err := a.ask(fmt.Sprintf("선택 (1-%d): ", count))
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		a.println("올바른 번호를 입력하세요.")
	}
}

// shareStory генерирует заголовок и публикует готовую историю на доске.
func (a *app) shareStory(ctx context.Context, s narrative.Session) error {
	ok, err := a.confirm("이야기를 게시판에 공유할까요?")
	if err != nil || !ok {
		return err
	}

	a.println("제목 생성 중...")
	title, err := a.story.GenerateTitle(ctx, s.Story)
	if err != nil || strings.TrimSpace(title) == "" {
		a.logger.Warn("Title generation failed, using fallback", zap.Error(err))
		title = s.CharacterName + "의 이야기"
	}
	a.printf("제목: %s\n", title)

	author, err := a.askNonEmpty("작성자: ")
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}

	id, err := a.board.SubmitPost(ctx, &models.Post{
		Title:     title,
		Content:   s.Story,
		Author:    author,
		Password:  password,
		Timestamp: a.now().UTC().Format(timestampLayout),
	})
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}
	a.printf("게시물이 등록되었습니다. (ID: %d)\n", id)
	return nil
}

func (a *app) askPassword() (string, error) {
	for {
		password, err := a.askNonEmpty("비밀번호: ")
		if err != nil {
			return "", err
		}
		again, err := a.ask("비밀번호 확인: ")
		if err != nil {
			return "", err
		}
		if password == again {
			return password, nil
		}
		a.println("비밀번호가 일치하지 않습니다.")
	}
}
