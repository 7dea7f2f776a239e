// Package places implements the birthplace evaluation task: a constant
// "London" baseline and a model-driven generation run, both scored by
// exact comparison against the corpus ground truth.
package places

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"placeval/pkg/core"
	"placeval/pkg/dataset"
	"placeval/pkg/scorer"
	"placeval/pkg/solver"
)

// DefaultLabel is the baseline prediction for every record.
const DefaultLabel = "London"

// Summary is the aggregate outcome of a run.
type Summary struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Accuracy returns correct/total as a percentage. An empty run is 0, not
// a division by zero.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

func (s Summary) String() string {
	return fmt.Sprintf("Correct: %d out of %d: %.2f%%", s.Correct, s.Total, s.Accuracy())
}

// RunBaseline evaluates the constant-label predictor against the corpus.
// Comparison is case-sensitive exact match.
func RunBaseline(ctx context.Context, corpusPath, label string) (Summary, core.EvalReport, error) {
	if label == "" {
		label = DefaultLabel
	}
	eval := core.Evaluator{
		Dataset: dataset.NewFileDataset(corpusPath),
		Solver:  solver.Constant{Label: label},
		Scorer:  scorer.ExactMatch{CaseSensitive: true},
	}
	report, err := eval.Run(ctx)
	if err != nil {
		return Summary{}, core.EvalReport{}, err
	}
	return Summary{
		Total:   report.Metrics.TotalSamples,
		Correct: report.Metrics.Correct,
	}, report, nil
}

// GenerationRun evaluates a model against the corpus: generate one
// prediction per record, optionally write them to Outputs (one per line,
// corpus order), then score the ordered list against the corpus.
type GenerationRun struct {
	Corpus        string
	Outputs       string
	Model         core.Model
	Solver        core.Solver // optional; defaults to the sentinel completion solver
	Options       core.GenerateOptions
	Workers       int
	RateLimiter   core.RateLimiter
	SampleTimeout time.Duration
	Progress      func(completed, total int)

	// Lenient switches scoring to case-insensitive comparison with
	// collapsed whitespace. The default matches the strict helper.
	Lenient bool
}

// Run executes the generation pass and returns the scored summary along
// with the full per-sample report. Any per-sample failure (malformed
// record, unknown rune, provider error) aborts the run.
func (g GenerationRun) Run(ctx context.Context) (Summary, core.EvalReport, error) {
	ds := dataset.NewFileDataset(g.Corpus)

	sv := g.Solver
	if sv == nil {
		if g.Model == nil {
			return Summary{}, core.EvalReport{}, fmt.Errorf("places: model is required")
		}
		sv = solver.Completion{Model: g.Model, Options: g.Options}
	}

	total := 0
	if count, err := ds.Len(ctx); err == nil {
		total = count
	}

	eval := core.Evaluator{
		Dataset:       ds,
		Solver:        sv,
		Scorer:        scorer.ExactMatch{CaseSensitive: !g.Lenient, NormalizeWhitespace: g.Lenient},
		Workers:       g.Workers,
		RateLimiter:   g.RateLimiter,
		SampleTimeout: g.SampleTimeout,
		Progress:      g.Progress,
		TotalSamples:  total,
	}
	report, err := eval.Run(ctx)
	if err != nil {
		return Summary{}, core.EvalReport{}, err
	}
	for _, result := range report.Results {
		if result.Error != "" {
			return Summary{}, core.EvalReport{}, fmt.Errorf("places: record %s: %s", result.Sample.ID, result.Error)
		}
	}

	predictions := report.Predictions()
	if g.Outputs != "" {
		if err := WritePredictions(g.Outputs, predictions); err != nil {
			return Summary{}, core.EvalReport{}, err
		}
	}

	sc := scorer.Places{CaseSensitive: !g.Lenient, NormalizeWhitespace: g.Lenient}
	scoredTotal, correct, err := sc.ScoreFile(g.Corpus, predictions)
	if err != nil {
		return Summary{}, core.EvalReport{}, err
	}
	return Summary{Total: scoredTotal, Correct: correct}, report, nil
}

// WritePredictions writes one prediction per line. The file handle is
// held only for the duration of the write and closed on every path.
func WritePredictions(path string, predictions []string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := bufio.NewWriter(file)
	for _, prediction := range predictions {
		if _, err := writer.WriteString(prediction + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
