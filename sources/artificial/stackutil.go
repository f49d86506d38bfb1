package artificial

import (
	"reportassist/sources/platform"
	"strings"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/sashabaranov/go-openai"
)

func MessagesToOpenRouter(system string, messages []platform.Message) []openrouter.ChatCompletionMessage {
	stack := []openrouter.ChatCompletionMessage{
		{Role: openrouter.ChatMessageRoleSystem, Content: openrouter.Content{Text: system}},
	}

	for _, message := range messages {
		text := message.Text()
		if message.Role == platform.MessageRoleSystem || strings.TrimSpace(text) == "" {
			continue
		}

		role := openrouter.ChatMessageRoleUser
		if message.Role == platform.MessageRoleAssistant {
			role = openrouter.ChatMessageRoleAssistant
		}
		stack = append(stack, openrouter.ChatCompletionMessage{Role: role, Content: openrouter.Content{Text: text}})
	}

	return stack
}

func MessagesToOpenAI(system string, messages []platform.Message) []openai.ChatCompletionMessage {
	stack := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
	}

	for _, message := range messages {
		text := message.Text()
		if message.Role == platform.MessageRoleSystem || strings.TrimSpace(text) == "" {
			continue
		}

		role := openai.ChatMessageRoleUser
		if message.Role == platform.MessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		stack = append(stack, openai.ChatCompletionMessage{Role: role, Content: text})
	}

	return stack
}

// latestQuery is the most recent user message, falling back to the last message of any role.
func latestQuery(messages []platform.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == platform.MessageRoleUser {
			return messages[i].Text()
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Text()
	}
	return ""
}
