package solver

import (
	"context"
	"fmt"
	"strings"

	"placeval/pkg/core"
)

// DefaultSentinel marks where generation should begin. Char-level models
// echo the prompt, so the completion is the segment between the first and
// second sentinel in the decoded text.
const DefaultSentinel = "⁇"

// DefaultMaxNewTokens bounds how much a completion may generate.
const DefaultMaxNewTokens = 32

// Completion appends a sentinel to the input, generates greedily, and
// extracts the completion segment from the response.
type Completion struct {
	Model    core.Model
	Options  core.GenerateOptions
	Sentinel string
}

func (c Completion) Name() string {
	if c.Model == nil {
		return "completion"
	}
	return c.Model.Name()
}

func (c Completion) Solve(ctx context.Context, sample core.Sample) (core.Response, error) {
	if c.Model == nil {
		return core.Response{}, fmt.Errorf("solver: model is required")
	}
	sentinel := c.Sentinel
	if sentinel == "" {
		sentinel = DefaultSentinel
	}

	opts := c.Options
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxNewTokens
	}
	if len(opts.Stop) == 0 {
		opts.Stop = []string{sentinel}
	}

	resp, err := c.Model.Generate(ctx, sample.Input+sentinel, opts)
	if err != nil {
		return core.Response{}, err
	}
	resp.Content = extractCompletion(resp.Content, sentinel)
	return resp, nil
}

// extractCompletion takes the segment immediately after the first
// sentinel, stopping at the next one. A response with no sentinel (a
// provider model that does not echo the prompt) is taken whole.
func extractCompletion(content, sentinel string) string {
	i := strings.Index(content, sentinel)
	if i < 0 {
		return content
	}
	rest := content[i+len(sentinel):]
	if j := strings.Index(rest, sentinel); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
