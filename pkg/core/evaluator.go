package core

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"
)

// Evaluator runs a dataset through a solver and scorer. Results come back
// in dataset order regardless of worker count, so the prediction list
// stays aligned with the corpus.
type Evaluator struct {
	Dataset       Dataset
	Solver        Solver
	Scorer        Scorer
	Workers       int
	RateLimiter   RateLimiter
	SampleTimeout time.Duration
	Progress      func(completed, total int)
	TotalSamples  int
}

type sequencedResult struct {
	seq    int
	result EvalResult
}

// Run executes an evaluation and returns a report.
func (e *Evaluator) Run(ctx context.Context) (EvalReport, error) {
	if e.Dataset == nil || e.Solver == nil || e.Scorer == nil {
		return EvalReport{}, errors.New("evaluator: dataset, solver, and scorer are required")
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}

	started := time.Now()
	sampleCh, errCh := e.Dataset.Samples(ctx)

	type job struct {
		seq    int
		sample Sample
	}
	jobCh := make(chan job)
	go func() {
		defer close(jobCh)
		seq := 0
		for sample := range sampleCh {
			select {
			case jobCh <- job{seq: seq, sample: sample}:
				seq++
			case <-ctx.Done():
				return
			}
		}
	}()

	resultsCh := make(chan sequencedResult, workers)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for j := range jobCh {
			if e.RateLimiter != nil {
				if err := e.RateLimiter.Wait(ctx); err != nil {
					return
				}
			}
			result := e.evaluateSample(ctx, j.sample)
			select {
			case resultsCh <- sequencedResult{seq: j.seq, result: result}:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var collected []sequencedResult
	var datasetErr error
	for {
		select {
		case <-ctx.Done():
			return EvalReport{}, ctx.Err()
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil && datasetErr == nil {
				datasetErr = err
			}
		case sr, ok := <-resultsCh:
			if !ok {
				if datasetErr != nil {
					return EvalReport{}, datasetErr
				}
				sort.Slice(collected, func(i, j int) bool {
					return collected[i].seq < collected[j].seq
				})
				results := make([]EvalResult, 0, len(collected))
				for _, item := range collected {
					results = append(results, item.result)
				}
				return EvalReport{
					TaskName:   e.Dataset.Name(),
					ModelName:  e.Solver.Name(),
					ScorerName: e.Scorer.Name(),
					Metrics:    CalculateMetrics(results),
					Results:    results,
					StartedAt:  started,
					FinishedAt: time.Now(),
				}, nil
			}
			collected = append(collected, sr)
			if e.Progress != nil {
				e.Progress(len(collected), e.TotalSamples)
			}
		}
	}
}

func (e *Evaluator) evaluateSample(ctx context.Context, sample Sample) EvalResult {
	if e.SampleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.SampleTimeout)
		defer cancel()
	}

	start := time.Now()
	result := EvalResult{Sample: sample}

	response, err := e.Solver.Solve(ctx, sample)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	score, err := e.Scorer.Score(ctx, sample, response)
	if err != nil {
		result.Error = err.Error()
	}
	result.Response = response
	result.Score = score
	result.Duration = time.Since(start)
	return result
}

// CalculateMetrics aggregates per-sample results. An empty slice yields
// zero metrics, never a division by zero.
func CalculateMetrics(results []EvalResult) Metrics {
	if len(results) == 0 {
		return Metrics{}
	}

	scores := make([]float64, 0, len(results))
	latencies := make([]time.Duration, 0, len(results))
	var correct int
	var totalTokens TokenUsage

	for _, result := range results {
		scores = append(scores, result.Score.Value)
		latencies = append(latencies, result.Response.Latency)
		if result.Score.Passed {
			correct++
		}
		totalTokens.PromptTokens += result.Response.TokenUsage.PromptTokens
		totalTokens.CompletionTokens += result.Response.TokenUsage.CompletionTokens
		totalTokens.TotalTokens += result.Response.TokenUsage.TotalTokens
	}

	return Metrics{
		TotalSamples: len(results),
		Correct:      correct,
		Accuracy:     float64(correct) / float64(len(results)),
		AverageScore: average(scores),
		P95Score:     percentile(scores, 0.95),
		TokenUsage:   totalTokens,
		AvgLatency:   averageDuration(latencies),
		P95Latency:   percentileDuration(latencies, 0.95),
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	copied := make([]float64, len(values))
	copy(copied, values)
	sort.Float64s(copied)

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	return copied[lower]*(1-weight) + copied[upper]*weight
}

func averageDuration(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return time.Duration(int64(sum) / int64(len(values)))
}

func percentileDuration(values []time.Duration, p float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	copied := make([]time.Duration, len(values))
	copy(copied, values)
	sort.Slice(copied, func(i, j int) bool { return copied[i] < copied[j] })

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	lowerVal := float64(copied[lower])
	upperVal := float64(copied[upper])
	return time.Duration(lowerVal*(1-weight) + upperVal*weight)
}
