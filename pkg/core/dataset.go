package core

import "context"

// Dataset provides samples for evaluation. Samples must be emitted in
// corpus order; predictions are matched to records by position.
type Dataset interface {
	Name() string
	Len(ctx context.Context) (int, error)
	Samples(ctx context.Context) (<-chan Sample, <-chan error)
}
