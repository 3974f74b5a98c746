package narrative

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(t *testing.T, s Session, a Action) (Session, Effect) {
	t.Helper()
	next, eff, err := Transition(s, a)
	require.NoError(t, err)
	return next, eff
}

func TestTransition_FullSessionTwoSteps(t *testing.T) {
	s, eff := step(t, Session{}, Start{CharacterName: "지우", TotalSteps: 2})
	assert.Equal(t, PhaseIntroRequested, s.Phase)
	assert.Equal(t, Effect{Kind: EffectGenerateIntro, CharacterName: "지우"}, eff)

	s, eff = step(t, s, IntroGenerated{Text: "인트로"})
	assert.Equal(t, PhaseChoicesRequested, s.Phase)
	assert.Equal(t, "인트로", s.Story)
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, Effect{Kind: EffectGenerateChoices, LastStory: "인트로"}, eff)

	s, eff = step(t, s, ChoicesGenerated{Raw: "가\n나\n다\n라"})
	assert.Equal(t, PhaseAwaitingChoice, s.Phase)
	assert.Equal(t, []string{"가", "나", "다", "라"}, s.Choices)
	assert.Equal(t, EffectNone, eff.Kind)

	// Индекс, а не текст варианта, уходит в модель
	s, eff = step(t, s, SelectChoice{Index: 2})
	assert.Equal(t, PhaseStoryRequested, s.Phase)
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, Effect{Kind: EffectGenerateStory, FullStory: "인트로", LastChoice: "선택지 3"}, eff)

	s, eff = step(t, s, StoryGenerated{Text: "전개"})
	assert.Equal(t, "인트로 전개", s.Story)
	assert.Equal(t, "전개", s.LastPassage)
	// Варианты строятся только по последнему фрагменту
	assert.Equal(t, Effect{Kind: EffectGenerateChoices, LastStory: "전개"}, eff)

	s, _ = step(t, s, ChoicesGenerated{Raw: "마\n바"})
	s, eff = step(t, s, SelectChoice{Index: 0})
	assert.Equal(t, PhaseEndingRequested, s.Phase)
	assert.Equal(t, 2, s.Step)
	assert.Equal(t, Effect{Kind: EffectGenerateEnding, FullStory: "인트로 전개"}, eff)

	s, eff = step(t, s, EndingGenerated{Text: "결말"})
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.True(t, s.IsTerminal())
	assert.Equal(t, "결말", s.Ending)
	assert.Equal(t, "인트로 전개 결말", s.Story)
	assert.Empty(t, s.Choices)
	assert.Equal(t, EffectNone, eff.Kind)

	after, eff, err := Transition(s, SelectChoice{Index: 0})
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.Equal(t, s, after)
	assert.Equal(t, EffectNone, eff.Kind)
}

func TestTransition_SingleStepGoesStraightToEnding(t *testing.T) {
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 1})
	s, _ = step(t, s, IntroGenerated{Text: "intro"})
	s, _ = step(t, s, ChoicesGenerated{Raw: "x"})
	s, eff := step(t, s, SelectChoice{Index: 0})
	assert.Equal(t, EffectGenerateEnding, eff.Kind)
	assert.Equal(t, PhaseEndingRequested, s.Phase)
}

func TestTransition_StartValidation(t *testing.T) {
	_, _, err := Transition(Session{}, Start{CharacterName: "   ", TotalSteps: 5})
	assert.ErrorIs(t, err, ErrCharacterNameRequired)

	_, _, err = Transition(Session{}, Start{CharacterName: "a", TotalSteps: 0})
	assert.ErrorIs(t, err, ErrInvalidTotalSteps)

	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	_, _, err = Transition(s, Start{CharacterName: "b", TotalSteps: 5})
	assert.ErrorIs(t, err, ErrUnexpectedAction)
}

func TestTransition_InvalidChoice(t *testing.T) {
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	s, _ = step(t, s, IntroGenerated{Text: "intro"})
	s, _ = step(t, s, ChoicesGenerated{Raw: "x\ny"})

	for _, idx := range []int{-1, 2, 10} {
		after, _, err := Transition(s, SelectChoice{Index: idx})
		assert.ErrorIs(t, err, ErrInvalidChoice)
		assert.Equal(t, s, after)
	}
}

func TestTransition_EmptyIntroFails(t *testing.T) {
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	s, eff := step(t, s, IntroGenerated{Text: "  "})
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.ErrorIs(t, s.Err, ErrEmptyPassage)
	assert.Equal(t, EffectNone, eff.Kind)
}

func TestTransition_EmptyChoicesUseFallback(t *testing.T) {
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	s, _ = step(t, s, IntroGenerated{Text: "intro"})
	s, _ = step(t, s, ChoicesGenerated{Raw: ""})
	assert.Equal(t, []string{FallbackChoice}, s.Choices)
	assert.Equal(t, PhaseAwaitingChoice, s.Phase)
}

func TestTransition_GenerationFailedKeepsStory(t *testing.T) {
	boom := errors.New("boom")
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	s, _ = step(t, s, IntroGenerated{Text: "intro"})
	s, _ = step(t, s, ChoicesGenerated{Raw: "x"})
	s, _ = step(t, s, SelectChoice{Index: 0})

	failed, eff := step(t, s, GenerationFailed{Err: boom})
	assert.Equal(t, PhaseFailed, failed.Phase)
	assert.Equal(t, "intro", failed.Story)
	assert.ErrorIs(t, failed.Err, boom)
	assert.Equal(t, EffectNone, eff.Kind)
	assert.True(t, failed.IsTerminal())

	_, _, err := Transition(failed, SelectChoice{Index: 0})
	assert.ErrorIs(t, err, ErrUnexpectedAction)
}

func TestTransition_UnexpectedActions(t *testing.T) {
	cases := []struct {
		name   string
		action Action
	}{
		{"intro before start", IntroGenerated{Text: "x"}},
		{"choices before start", ChoicesGenerated{Raw: "x"}},
		{"select before start", SelectChoice{Index: 0}},
		{"story before start", StoryGenerated{Text: "x"}},
		{"ending before start", EndingGenerated{Text: "x"}},
		{"failure before start", GenerationFailed{Err: errors.New("x")}},
		{"nil action", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, eff, err := Transition(Session{}, tc.action)
			assert.ErrorIs(t, err, ErrUnexpectedAction)
			assert.Equal(t, Session{}, s)
			assert.Equal(t, EffectNone, eff.Kind)
		})
	}
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	s, _ := step(t, Session{}, Start{CharacterName: "a", TotalSteps: 5})
	s, _ = step(t, s, IntroGenerated{Text: "intro"})
	s, _ = step(t, s, ChoicesGenerated{Raw: "x\ny"})
	choices := s.Choices

	_, _ = step(t, s, SelectChoice{Index: 1})
	assert.Equal(t, PhaseAwaitingChoice, s.Phase)
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, []string{"x", "y"}, choices)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "awaiting_choice", PhaseAwaitingChoice.String())
	assert.Equal(t, "unknown", Phase(99).String())
	assert.Equal(t, "generate_story", EffectGenerateStory.String())
}
