package openai

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	openai "github.com/sashabaranov/go-openai"
)

// chatMessage converts one turn. Turns with an image use multi-part content.
func chatMessage(role domain.Role, text string, att *domain.Attachment) (openai.ChatCompletionMessage, bool) {
	msgRole := openai.ChatMessageRoleUser
	if role == domain.RoleModel {
		msgRole = openai.ChatMessageRoleAssistant
	}

	if att == nil {
		return openai.ChatCompletionMessage{Role: msgRole, Content: text}, text != ""
	}

	var parts []openai.ChatMessagePart
	if text != "" {
		parts = append(parts, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: text})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL: "data:" + att.MIMEType + ";base64," + att.Data,
		},
	})
	return openai.ChatCompletionMessage{Role: msgRole, MultiContent: parts}, true
}

func chatMessages(system string, req generation.ChatRequest) []openai.ChatCompletionMessage {
	history := req.ReplayableHistory()
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})

	for _, m := range history {
		if msg, ok := chatMessage(m.Role, m.Text, m.Attachment); ok {
			msgs = append(msgs, msg)
		}
	}
	if msg, ok := chatMessage(domain.RoleUser, strings.TrimSpace(req.Text), req.Attachment); ok {
		msgs = append(msgs, msg)
	}
	return msgs
}

// unwrapEnvelope returns the value under key. A bare JSON array is passed
// through for endpoints that ignore the response format.
func unwrapEnvelope(raw, key string) (string, error) {
	body := generation.StripCodeFence(raw)
	if body == "" || strings.HasPrefix(body, "[") {
		return body, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return "", generation.Failure(generation.ErrMalformedGeneration, "failed to parse %s envelope: %v", key, err)
	}
	inner, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
		return "", generation.Failure(generation.ErrMalformedGeneration, "response is missing %s", key)
	}
	return string(inner), nil
}
