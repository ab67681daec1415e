package llm

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a hand-written llms.Model that records the last call.
type fakeModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	noChoice bool
	calls    int
	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.messages = messages
	f.options = llms.CallOptions{}
	for _, opt := range options {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.noChoice {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func textOf(msg llms.MessageContent) string {
	var out string
	for _, part := range msg.Parts {
		if tp, ok := part.(llms.TextContent); ok {
			out += tp.Text
		}
	}
	return out
}
