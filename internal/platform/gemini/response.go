package gemini

import (
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"google.golang.org/genai"
)

// blockedFinishReasons are the finish reasons that mean the model declined.
var blockedFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:     true,
	genai.FinishReasonRecitation: true,
	"BLOCKLIST":                  true,
	"PROHIBITED_CONTENT":         true,
	"SPII":                       true,
	"IMAGE_SAFETY":               true,
}

// inspectResponse returns the text of the first candidate along with the
// candidate itself. A response without candidates or text is not an error
// here; callers decide what an empty answer means.
func inspectResponse(resp *genai.GenerateContentResponse) (string, *genai.Candidate, error) {
	if resp == nil {
		return "", nil, nil
	}

	if fb := resp.PromptFeedback; fb != nil {
		reason := string(fb.BlockReason)
		if reason != "" && reason != "BLOCKED_REASON_UNSPECIFIED" {
			return "", nil, generation.Failure(generation.ErrContentBlocked, "prompt blocked: %s", reason)
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", nil, nil
	}

	cand := resp.Candidates[0]
	if blockedFinishReasons[cand.FinishReason] {
		return "", cand, generation.Failure(generation.ErrContentBlocked, "response stopped: %s", cand.FinishReason)
	}

	if cand.Content == nil {
		return "", cand, nil
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), cand, nil
}

// groundingSources lists the web pages a grounded answer cites, in the order
// the model reported them, without duplicate URIs.
func groundingSources(cand *genai.Candidate) []domain.Source {
	if cand == nil || cand.GroundingMetadata == nil {
		return nil
	}

	seen := make(map[string]bool)
	var sources []domain.Source
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true

		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		sources = append(sources, domain.Source{URI: chunk.Web.URI, Title: title})
	}
	return sources
}

// messageContent converts one chat turn into model content. It returns nil
// for a turn with neither text nor attachment.
func messageContent(role domain.Role, text string, att *domain.Attachment) (*genai.Content, error) {
	var parts []*genai.Part
	if text != "" {
		parts = append(parts, &genai.Part{Text: text})
	}
	if att != nil {
		data, err := att.Bytes()
		if err != nil {
			return nil, err
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: data},
		})
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &genai.Content{Role: string(role), Parts: parts}, nil
}

// chatContents replays the history followed by the new user turn.
func chatContents(req generation.ChatRequest) ([]*genai.Content, error) {
	history := req.ReplayableHistory()
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		content, err := messageContent(msg.Role, msg.Text, msg.Attachment)
		if err != nil {
			return nil, err
		}
		if content != nil {
			contents = append(contents, content)
		}
	}

	turn, err := messageContent(domain.RoleUser, strings.TrimSpace(req.Text), req.Attachment)
	if err != nil {
		return nil, err
	}
	if turn != nil {
		contents = append(contents, turn)
	}
	return contents, nil
}
