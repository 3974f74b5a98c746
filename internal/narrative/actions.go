package narrative

// Action - входное событие автомата.
type Action interface {
	isAction()
}

// Start начинает новую историю.
type Start struct {
	CharacterName string
	TotalSteps    int
}

// SelectChoice - выбор варианта с индексом Index из последнего списка.
type SelectChoice struct {
	Index int
}

type IntroGenerated struct {
	Text string
}

type StoryGenerated struct {
	Text string
}

// ChoicesGenerated несет сырой ответ модели, варианты разделены переводом строки.
type ChoicesGenerated struct {
	Raw string
}

type EndingGenerated struct {
	Text string
}

// GenerationFailed - удаленный вызов завершился ошибкой.
type GenerationFailed struct {
	Err error
}

func (Start) isAction()            {}
func (SelectChoice) isAction()     {}
func (IntroGenerated) isAction()   {}
func (StoryGenerated) isAction()   {}
func (ChoicesGenerated) isAction() {}
func (EndingGenerated) isAction()  {}
func (GenerationFailed) isAction() {}

// EffectKind - какой удаленный вызов нужно выполнить.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectGenerateIntro
	EffectGenerateStory
	EffectGenerateChoices
	EffectGenerateEnding
)

func (k EffectKind) String() string {
	switch k {
	case EffectGenerateIntro:
		return "generate_intro"
	case EffectGenerateStory:
		return "generate_story"
	case EffectGenerateChoices:
		return "generate_choices"
	case EffectGenerateEnding:
		return "generate_ending"
	default:
		return "none"
	}
}

// Effect - запрос к генератору, который должен выполнить Runner.
type Effect struct {
	Kind          EffectKind
	CharacterName string
	FullStory     string
	LastChoice    string
	LastStory     string
}
