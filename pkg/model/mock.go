package model

import (
	"context"
	"time"

	"placeval/pkg/core"
)

// MockModel returns a fixed response, a scripted response per prompt, or
// echoes the prompt.
type MockModel struct {
	NameValue    string
	ResponseText string
	ResponseFn   func(prompt string) string
}

func (m MockModel) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m MockModel) Generate(_ context.Context, prompt string, _ core.GenerateOptions) (core.Response, error) {
	start := time.Now()
	content := prompt
	switch {
	case m.ResponseFn != nil:
		content = m.ResponseFn(prompt)
	case m.ResponseText != "":
		content = m.ResponseText
	}
	return core.Response{
		Content: content,
		Latency: time.Since(start),
	}, nil
}
