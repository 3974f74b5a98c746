// Package narrative реализует линейный сценарий истории:
// вступление, N раундов выбора и концовка.
//
// Transition - чистая функция (Session, Action) -> (Session, Effect).
// Runner выполняет эффекты через Generator и подает результат обратно.
package narrative

import (
	"errors"
	"strings"
)

// Phase - этап сессии.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseIntroRequested
	PhaseChoicesRequested
	PhaseAwaitingChoice
	PhaseStoryRequested
	PhaseEndingRequested
	PhaseComplete
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseNotStarted:       "not_started",
	PhaseIntroRequested:   "intro_requested",
	PhaseChoicesRequested: "choices_requested",
	PhaseAwaitingChoice:   "awaiting_choice",
	PhaseStoryRequested:   "story_requested",
	PhaseEndingRequested:  "ending_requested",
	PhaseComplete:         "complete",
	PhaseFailed:           "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

var (
	ErrCharacterNameRequired = errors.New("character name is required")
	ErrInvalidTotalSteps     = errors.New("total steps must be positive")
	ErrInvalidChoice         = errors.New("choice index out of range")
	ErrSessionComplete       = errors.New("session is already complete")
	ErrUnexpectedAction      = errors.New("action is not allowed in the current phase")
	ErrEmptyPassage          = errors.New("generated passage is empty")
)

// Session - состояние одной истории. Каждый переход возвращает новое значение.
type Session struct {
	Phase         Phase
	CharacterName string
	// Story - весь накопленный текст, фрагменты через пробел.
	Story string
	// LastPassage - последний фрагмент (вступление или продолжение).
	LastPassage string
	Step        int
	TotalSteps  int
	Choices     []string
	Ending      string
	Err         error
}

// IsTerminal сообщает, что сессия завершена (успешно или с ошибкой).
func (s Session) IsTerminal() bool {
	return s.Phase == PhaseComplete || s.Phase == PhaseFailed
}

func (s Session) clone() Session {
	if s.Choices != nil {
		s.Choices = append([]string(nil), s.Choices...)
	}
	return s
}

func appendPassage(story, passage string) string {
	if story == "" {
		return passage
	}
	if passage == "" {
		return story
	}
	return story + " " + passage
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
