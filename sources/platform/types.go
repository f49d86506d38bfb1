package platform

import "strings"

type MessageRole = string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

type MessagePartType = string

const (
	MessagePartText MessagePartType = "text"
)

type MessagePart struct {
	Type MessagePartType `json:"type"`
	Text string          `json:"text,omitempty"`
}

// Message is one conversation entry. Newer clients send Parts, older ones a plain Content string.
type Message struct {
	Role    MessageRole   `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []MessagePart `json:"parts,omitempty"`
}

// Text returns the textual content of the message, preferring structured parts.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return m.Content
	}

	var sb strings.Builder
	for _, part := range m.Parts {
		if part.Type == MessagePartText || part.Type == "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func UserMessage(text string) Message {
	return Message{Role: MessageRoleUser, Parts: []MessagePart{{Type: MessagePartText, Text: text}}}
}
