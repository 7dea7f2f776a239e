package solver

import (
	"context"

	"placeval/pkg/core"
)

// Constant ignores the input and always predicts a fixed label. This is
// the baseline predictor.
type Constant struct {
	Label string
}

func (c Constant) Name() string {
	return "constant"
}

func (c Constant) Solve(_ context.Context, _ core.Sample) (core.Response, error) {
	return core.Response{Content: c.Label}, nil
}
