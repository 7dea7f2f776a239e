package model

import (
	"context"
	"fmt"
	"time"

	"placeval/pkg/core"
	"placeval/pkg/vocab"
)

// Sampler is the autoregressive sampling collaborator behind LocalModel.
// It takes an encoded prompt and returns the full token sequence, prompt
// echo included, extended by up to maxNewTokens tokens. greedy selects
// argmax decoding over sampling.
type Sampler interface {
	Sample(ctx context.Context, prompt []int, maxNewTokens int, greedy bool) ([]int, error)
}

// LocalModel runs a char-level model: it encodes the prompt with a
// character vocabulary, delegates generation to a Sampler, and decodes
// the result. An unseen character is fatal; the vocabulary has no
// unknown token.
type LocalModel struct {
	NameValue string
	Vocab     *vocab.Vocab
	Sampler   Sampler
}

func (m LocalModel) Name() string {
	if m.NameValue == "" {
		return "local"
	}
	return m.NameValue
}

func (m LocalModel) Generate(ctx context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	if m.Vocab == nil || m.Sampler == nil {
		return core.Response{}, fmt.Errorf("local: vocab and sampler are required")
	}

	ids, err := m.Vocab.Encode(prompt)
	if err != nil {
		return core.Response{}, fmt.Errorf("local: encode prompt: %w", err)
	}

	maxNew := opts.MaxTokens
	if maxNew <= 0 {
		maxNew = 32
	}
	greedy := opts.Temperature <= 0

	start := time.Now()
	out, err := m.Sampler.Sample(ctx, ids, maxNew, greedy)
	if err != nil {
		return core.Response{}, fmt.Errorf("local: sample: %w", err)
	}

	text, err := m.Vocab.Decode(out)
	if err != nil {
		return core.Response{}, fmt.Errorf("local: decode: %w", err)
	}

	generated := len(out) - len(ids)
	if generated < 0 {
		generated = 0
	}
	return core.Response{
		Content: text,
		TokenUsage: core.TokenUsage{
			PromptTokens:     len(ids),
			CompletionTokens: generated,
			TotalTokens:      len(out),
		},
		Latency: time.Since(start),
	}, nil
}
