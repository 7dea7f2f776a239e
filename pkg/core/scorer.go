package core

import "context"

// Scorer evaluates a prediction against a sample.
type Scorer interface {
	Name() string
	Score(ctx context.Context, sample Sample, response Response) (Score, error)
}
