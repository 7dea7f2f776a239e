package solver

import (
	"context"
	"fmt"
	"strings"

	"placeval/pkg/core"
)

// Basic asks a provider model for the place name directly.
type Basic struct {
	Model          core.Model
	Options        core.GenerateOptions
	PromptTemplate string
}

func (b Basic) Name() string {
	if b.Model == nil {
		return "basic"
	}
	return b.Model.Name()
}

func (b Basic) Solve(ctx context.Context, sample core.Sample) (core.Response, error) {
	if b.Model == nil {
		return core.Response{}, fmt.Errorf("solver: model is required")
	}
	prompt := sample.Input
	if b.PromptTemplate != "" {
		prompt = strings.ReplaceAll(b.PromptTemplate, "{{input}}", sample.Input)
	} else {
		prompt = applyTemplate("Answer with only the place name, nothing else.\nQ: {{input}}\nA:", map[string]string{
			"input": sample.Input,
		})
	}
	return b.Model.Generate(ctx, prompt, b.Options)
}
