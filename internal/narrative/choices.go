package narrative

import (
	"fmt"
	"strings"
)

// FallbackChoice показывается, когда модель не вернула ни одного варианта.
const FallbackChoice = "다시 시도해주세요."

// ParseChoices делит ответ по строкам, обрезает пробелы и отбрасывает пустые строки.
func ParseChoices(raw string) []string {
	choices := make([]string, 0, 4)
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			choices = append(choices, line)
		}
	}
	if len(choices) == 0 {
		return []string{FallbackChoice}
	}
	return choices
}

// ChoiceLabel - то, что уходит в модель вместо текста варианта: "선택지 N", N с единицы.
func ChoiceLabel(index int) string {
	return fmt.Sprintf("선택지 %d", index+1)
}
