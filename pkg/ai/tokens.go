package ai

import (
	"github.com/pkoukk/tiktoken-go"
)

// estimateTokens примерно считает токены, когда провайдер не вернул usage.
func estimateTokens(model string, messages []Message, output string) (prompt, compl int, ok bool) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, 0, false
		}
	}
	for _, m := range messages {
		prompt += len(tke.Encode(m.Content, nil, nil))
	}
	compl = len(tke.Encode(output, nil, nil))
	return prompt, compl, true
}
