// Package prompts собирает сообщения для модели: вступление, продолжение,
// концовка, варианты выбора и заголовок.
package prompts

import (
	"fmt"

	"novel-board/pkg/ai"
)

const (
	introTemplate = "주인공 이름: %s 으로 미래의 내가 내 앞에 나타났다, 나는 결국 타임머신을 개발하는데 성공하였다고 한다. " +
		"미래의 나는 타임머신 개발과 함께 나는 범죄집단의 타겟 대상이 되었고 도망칠 곳은 과거 밖에 없다고 한다. " +
		"더이상 미래가 없는 삶을 살게 될 수 밖에 없는 필연적인 삶을 알게 되면서도 타임머신을 개발해야 할지 고민을 시작으로하는 " +
		"자연스러운 스토리 인트로를 150~250자 내외로 생성해 주세요."

	storyTemplate = "지금까지의 스토리: %s\n선택지: %s\n" +
		"이어지는 스토리만 150~250자 내외로 생성해 주세요. 이전에 몇번선택지를 골랐는지는 얘기 안 해줘도 되고 이에 대해 대답도 하지마."

	endingTemplate = "지금까지의 스토리: %s\n" +
		"결말을 150~250자 내외로 생성해 주세요. 이전에 몇번선택지를 골랐는지는 얘기 안해줘도되고 이에대해 대답도 하지마."

	choicesTemplate = "지금까지의 스토리: %s\n선택지를 각각 20자 이하로 4개 생성해 주세요."

	titleSystem   = "너는 창의적인 제목을 생성하는 AI입니다."
	titleTemplate = "다음 스토리에 어울리는 제목을 만들어 주세요:\n\n%s\n\n제목:"
)

func user(content string) []ai.Message {
	return []ai.Message{{Role: ai.RoleUser, Content: content}}
}

// Intro - вступление для героя с именем characterName.
func Intro(characterName string) []ai.Message {
	return user(fmt.Sprintf(introTemplate, characterName))
}

// Story - продолжение истории после выбора lastChoice.
func Story(fullStory, lastChoice string) []ai.Message {
	return user(fmt.Sprintf(storyTemplate, fullStory, lastChoice))
}

// Ending - концовка по всей накопленной истории.
func Ending(fullStory string) []ai.Message {
	return user(fmt.Sprintf(endingTemplate, fullStory))
}

// Choices - четыре варианта выбора по последнему фрагменту, по одному на строку.
func Choices(lastStory string) []ai.Message {
	return user(fmt.Sprintf(choicesTemplate, lastStory))
}

// Title - заголовок для готовой истории.
func Title(story string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: titleSystem},
		{Role: ai.RoleUser, Content: fmt.Sprintf(titleTemplate, story)},
	}
}
