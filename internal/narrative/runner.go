package narrative

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Generator выполняет удаленные вызовы генерации.
// Ему удовлетворяют и HTTP-клиент, и StoryService напрямую.
type Generator interface {
	GenerateIntro(ctx context.Context, characterName string) (string, error)
	GenerateStory(ctx context.Context, fullStory, lastChoice string) (string, error)
	GenerateEnding(ctx context.Context, fullStory string) (string, error)
	GenerateChoices(ctx context.Context, lastStory string) (string, error)
}

// Runner применяет действия и выполняет эффекты, пока сессия не дойдет
// до ожидания выбора или до конца.
type Runner struct {
	gen      Generator
	pause    time.Duration
	onEffect func(Effect)
	logger   *zap.Logger
}

// RunnerOption настраивает Runner.
type RunnerOption func(*Runner)

// WithPause задает паузу перед каждым удаленным вызовом (только для отображения).
func WithPause(d time.Duration) RunnerOption {
	return func(r *Runner) { r.pause = d }
}

// WithEffectHook вызывает fn перед выполнением каждого эффекта.
func WithEffectHook(fn func(Effect)) RunnerOption {
	return func(r *Runner) { r.onEffect = fn }
}

// WithLogger задает логгер.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger.Named("NarrativeRunner") }
}

// NewRunner создает Runner поверх генератора.
func NewRunner(gen Generator, opts ...RunnerOption) *Runner {
	r := &Runner{gen: gen, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch применяет действие и выполняет все последующие эффекты.
// Ошибка возвращается только для отклоненных действий; сбои генерации
// переводят сессию в PhaseFailed.
func (r *Runner) Dispatch(ctx context.Context, s Session, a Action) (Session, error) {
	next, eff, err := Transition(s, a)
	if err != nil {
		return s, err
	}

	for eff.Kind != EffectNone {
		if r.onEffect != nil {
			r.onEffect(eff)
		}
		action := r.perform(ctx, eff)
		next, eff, err = Transition(next, action)
		if err != nil {
			// Не должно случаться: perform отвечает действием, ожидаемым в текущей фазе
			return next, fmt.Errorf("narrative runner: %w", err)
		}
	}

	r.logger.Debug("Session advanced",
		zap.Stringer("phase", next.Phase),
		zap.Int("step", next.Step),
		zap.Int("total_steps", next.TotalSteps),
	)
	return next, nil
}

func (r *Runner) perform(ctx context.Context, eff Effect) Action {
	if err := r.wait(ctx); err != nil {
		return GenerationFailed{Err: err}
	}

	var (
		text string
		err  error
	)
	switch eff.Kind {
	case EffectGenerateIntro:
		text, err = r.gen.GenerateIntro(ctx, eff.CharacterName)
	case EffectGenerateStory:
		text, err = r.gen.GenerateStory(ctx, eff.FullStory, eff.LastChoice)
	case EffectGenerateChoices:
		text, err = r.gen.GenerateChoices(ctx, eff.LastStory)
	case EffectGenerateEnding:
		text, err = r.gen.GenerateEnding(ctx, eff.FullStory)
	default:
		return GenerationFailed{Err: fmt.Errorf("unknown effect %s", eff.Kind)}
	}
	if err != nil {
		r.logger.Warn("Generation failed", zap.Stringer("effect", eff.Kind), zap.Error(err))
		return GenerationFailed{Err: err}
	}

	switch eff.Kind {
	case EffectGenerateIntro:
		return IntroGenerated{Text: text}
	case EffectGenerateStory:
		return StoryGenerated{Text: text}
	case EffectGenerateChoices:
		return ChoicesGenerated{Raw: text}
	default:
		return EndingGenerated{Text: text}
	}
}

func (r *Runner) wait(ctx context.Context) error {
	if r.pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
