package model

import (
	"context"
	"testing"

	"placeval/pkg/core"
	"placeval/pkg/vocab"

	"github.com/stretchr/testify/require"
)

// stubSampler appends a fixed continuation to the prompt and records the
// arguments it was called with.
type stubSampler struct {
	continuation []int

	gotPrompt []int
	gotMax    int
	gotGreedy bool
}

func (s *stubSampler) Sample(_ context.Context, prompt []int, maxNewTokens int, greedy bool) ([]int, error) {
	s.gotPrompt = prompt
	s.gotMax = maxNewTokens
	s.gotGreedy = greedy
	out := append([]int{}, prompt...)
	return append(out, s.continuation...), nil
}

func TestLocalModelGenerate(t *testing.T) {
	v := vocab.Build("abc")
	want, err := v.Encode("c")
	require.NoError(t, err)

	sampler := &stubSampler{continuation: want}
	m := LocalModel{Vocab: v, Sampler: sampler}

	resp, err := m.Generate(context.Background(), "ab", core.GenerateOptions{MaxTokens: 8})
	require.NoError(t, err)
	require.Equal(t, "abc", resp.Content)
	require.Equal(t, 8, sampler.gotMax)
	require.True(t, sampler.gotGreedy)
	require.Equal(t, 2, resp.TokenUsage.PromptTokens)
	require.Equal(t, 1, resp.TokenUsage.CompletionTokens)
	require.Equal(t, 3, resp.TokenUsage.TotalTokens)
}

func TestLocalModelDefaultsAndSampling(t *testing.T) {
	v := vocab.Build("ab")
	sampler := &stubSampler{}
	m := LocalModel{Vocab: v, Sampler: sampler}

	_, err := m.Generate(context.Background(), "a", core.GenerateOptions{Temperature: 0.8})
	require.NoError(t, err)
	require.Equal(t, 32, sampler.gotMax)
	require.False(t, sampler.gotGreedy)
}

func TestLocalModelUnknownRune(t *testing.T) {
	m := LocalModel{Vocab: vocab.Build("ab"), Sampler: &stubSampler{}}

	_, err := m.Generate(context.Background(), "ax", core.GenerateOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not in vocabulary")
}

func TestLocalModelMissingCollaborators(t *testing.T) {
	_, err := LocalModel{}.Generate(context.Background(), "a", core.GenerateOptions{})
	require.Error(t, err)
}

func TestMockModel(t *testing.T) {
	echo := MockModel{}
	resp, err := echo.Generate(context.Background(), "hello", core.GenerateOptions{})
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Content)

	fixed := MockModel{ResponseText: "London"}
	resp, err = fixed.Generate(context.Background(), "hello", core.GenerateOptions{})
	require.NoError(t, err)
	require.Equal(t, "London", resp.Content)
}
