package solver

import (
	"context"
	"testing"

	"placeval/pkg/core"

	"github.com/stretchr/testify/require"
)

// recordingModel captures the prompt and options it was generated with.
type recordingModel struct {
	response string

	gotPrompt string
	gotOpts   core.GenerateOptions
}

func (m *recordingModel) Name() string {
	return "recording"
}

func (m *recordingModel) Generate(_ context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	m.gotPrompt = prompt
	m.gotOpts = opts
	content := m.response
	if content == "" {
		content = prompt
	}
	return core.Response{Content: content}, nil
}

func TestConstant(t *testing.T) {
	c := Constant{Label: "London"}
	require.Equal(t, "constant", c.Name())

	resp, err := c.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "London", resp.Content)
}

func TestCompletionExtractsBetweenSentinels(t *testing.T) {
	m := &recordingModel{}
	c := Completion{Model: m}

	resp, err := c.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "Where was Bob born?⁇", m.gotPrompt)
	require.Equal(t, DefaultMaxNewTokens, m.gotOpts.MaxTokens)
	require.Equal(t, []string{DefaultSentinel}, m.gotOpts.Stop)
	// Echoed prompt ends with the sentinel and nothing after it.
	require.Equal(t, "", resp.Content)
}

func TestCompletionEchoedAnswer(t *testing.T) {
	m := &recordingModel{response: "Where was Bob born?⁇London⁇ trailing"}
	c := Completion{Model: m}

	resp, err := c.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "London", resp.Content)
}

func TestCompletionNoSentinelTakenWhole(t *testing.T) {
	m := &recordingModel{response: "London"}
	c := Completion{Model: m}

	resp, err := c.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "London", resp.Content)
}

func TestCompletionCustomSentinel(t *testing.T) {
	m := &recordingModel{response: "q|London|"}
	c := Completion{Model: m, Sentinel: "|"}

	resp, err := c.Solve(context.Background(), core.Sample{Input: "q"})
	require.NoError(t, err)
	require.Equal(t, "q|", m.gotPrompt)
	require.Equal(t, "London", resp.Content)
}

func TestCompletionRequiresModel(t *testing.T) {
	_, err := Completion{}.Solve(context.Background(), core.Sample{})
	require.Error(t, err)
}

func TestBasicPrompt(t *testing.T) {
	m := &recordingModel{response: "London"}
	b := Basic{Model: m}

	resp, err := b.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "London", resp.Content)
	require.Contains(t, m.gotPrompt, "Q: Where was Bob born?")
	require.Contains(t, m.gotPrompt, "Answer with only the place name")
}

func TestBasicCustomTemplate(t *testing.T) {
	m := &recordingModel{response: "London"}
	b := Basic{Model: m, PromptTemplate: "Birthplace of {{input}}:"}

	_, err := b.Solve(context.Background(), core.Sample{Input: "Bob"})
	require.NoError(t, err)
	require.Equal(t, "Birthplace of Bob:", m.gotPrompt)
}

func TestFewShotPrompt(t *testing.T) {
	m := &recordingModel{response: "London"}
	f := FewShot{
		Model: m,
		Examples: []FewShotExample{
			{Input: "Where was Alice born?", Output: "Paris"},
		},
	}

	_, err := f.Solve(context.Background(), core.Sample{Input: "Where was Bob born?"})
	require.NoError(t, err)
	require.Equal(t, "Q: Where was Alice born?\nA: Paris\n\nQ: Where was Bob born?\nA:", m.gotPrompt)
	require.NotEmpty(t, m.gotOpts.SystemPrompt)
	require.Equal(t, DefaultMaxNewTokens, m.gotOpts.MaxTokens)
}
