package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

type recordedCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// fakeClient returns queued responses in order, repeating the last one.
type fakeClient struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     []recordedCall
}

func (f *fakeClient) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.calls)
	f.calls = append(f.calls, recordedCall{model: model, contents: contents, config: config})

	if len(f.errs) > 0 {
		if err := f.errs[min(i, len(f.errs)-1)]; err != nil {
			return nil, err
		}
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	return f.responses[min(i, len(f.responses)-1)], nil
}

func (f *fakeClient) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: text}},
			},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
