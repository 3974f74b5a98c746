package narrative

import "fmt"

// Transition применяет действие к сессии. При ошибке сессия возвращается без изменений
// и эффект пустой.
func Transition(s Session, a Action) (Session, Effect, error) {
	next := s.clone()

	switch act := a.(type) {
	case Start:
		if s.Phase != PhaseNotStarted {
			return s, Effect{}, unexpected(s, a)
		}
		if isBlank(act.CharacterName) {
			return s, Effect{}, ErrCharacterNameRequired
		}
		if act.TotalSteps <= 0 {
			return s, Effect{}, ErrInvalidTotalSteps
		}
		next = Session{
			Phase:         PhaseIntroRequested,
			CharacterName: act.CharacterName,
			TotalSteps:    act.TotalSteps,
		}
		return next, Effect{Kind: EffectGenerateIntro, CharacterName: act.CharacterName}, nil

	case IntroGenerated:
		if s.Phase != PhaseIntroRequested {
			return s, Effect{}, unexpected(s, a)
		}
		if isBlank(act.Text) {
			next.Phase = PhaseFailed
			next.Err = ErrEmptyPassage
			return next, Effect{}, nil
		}
		next.Story = act.Text
		next.LastPassage = act.Text
		next.Step = 0
		next.Phase = PhaseChoicesRequested
		return next, Effect{Kind: EffectGenerateChoices, LastStory: act.Text}, nil

	case ChoicesGenerated:
		if s.Phase != PhaseChoicesRequested {
			return s, Effect{}, unexpected(s, a)
		}
		next.Choices = ParseChoices(act.Raw)
		next.Phase = PhaseAwaitingChoice
		return next, Effect{}, nil

	case SelectChoice:
		switch s.Phase {
		case PhaseAwaitingChoice:
		case PhaseComplete:
			return s, Effect{}, ErrSessionComplete
		default:
			return s, Effect{}, unexpected(s, a)
		}
		if act.Index < 0 || act.Index >= len(s.Choices) {
			return s, Effect{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, act.Index, len(s.Choices))
		}
		next.Step++
		next.Choices = nil
		if next.Step >= next.TotalSteps {
			next.Phase = PhaseEndingRequested
			return next, Effect{Kind: EffectGenerateEnding, FullStory: next.Story}, nil
		}
		next.Phase = PhaseStoryRequested
		return next, Effect{Kind: EffectGenerateStory, FullStory: next.Story, LastChoice: ChoiceLabel(act.Index)}, nil

	case StoryGenerated:
		if s.Phase != PhaseStoryRequested {
			return s, Effect{}, unexpected(s, a)
		}
		if isBlank(act.Text) {
			next.Phase = PhaseFailed
			next.Err = ErrEmptyPassage
			return next, Effect{}, nil
		}
		next.Story = appendPassage(next.Story, act.Text)
		next.LastPassage = act.Text
		next.Phase = PhaseChoicesRequested
		return next, Effect{Kind: EffectGenerateChoices, LastStory: act.Text}, nil

	case EndingGenerated:
		if s.Phase != PhaseEndingRequested {
			return s, Effect{}, unexpected(s, a)
		}
		next.Ending = act.Text
		next.Story = appendPassage(next.Story, act.Text)
		next.Choices = nil
		next.Phase = PhaseComplete
		return next, Effect{}, nil

	case GenerationFailed:
		switch s.Phase {
		case PhaseIntroRequested, PhaseChoicesRequested, PhaseStoryRequested, PhaseEndingRequested:
		default:
			return s, Effect{}, unexpected(s, a)
		}
		next.Phase = PhaseFailed
		next.Err = act.Err
		next.Choices = nil
		return next, Effect{}, nil
	}

	return s, Effect{}, unexpected(s, a)
}

func unexpected(s Session, a Action) error {
	return fmt.Errorf("%w: %T in phase %s", ErrUnexpectedAction, a, s.Phase)
}
