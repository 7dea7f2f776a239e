package places_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"placeval/pkg/model"
	"placeval/pkg/places"

	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunBaseline(t *testing.T) {
	path := writeCorpus(t, strings.Join([]string{
		"Where was Alice born?\tLondon",
		"Where was Bob born?\tParis",
		"Where was Carol born?\tLondon",
		"",
	}, "\n"))

	summary, report, err := places.RunBaseline(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 2, summary.Correct)
	require.Len(t, report.Results, 3)
}

func TestRunBaselineIdempotent(t *testing.T) {
	path := writeCorpus(t, "q1\tLondon\nq2\tMadrid\n")

	first, _, err := places.RunBaseline(context.Background(), path, "")
	require.NoError(t, err)
	second, _, err := places.RunBaseline(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunBaselineCaseSensitive(t *testing.T) {
	path := writeCorpus(t, "q\tlondon\n")

	summary, _, err := places.RunBaseline(context.Background(), path, "London")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, 0, summary.Correct)
}

func TestRunBaselineEmptyCorpus(t *testing.T) {
	path := writeCorpus(t, "")

	summary, _, err := places.RunBaseline(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 0, summary.Total)
	require.Equal(t, 0, summary.Correct)
	require.Equal(t, "Correct: 0 out of 0: 0.00%", summary.String())
}

func TestRunBaselineMissingCorpus(t *testing.T) {
	_, _, err := places.RunBaseline(context.Background(), filepath.Join(t.TempDir(), "absent.tsv"), "")
	require.Error(t, err)
}

func TestSummaryString(t *testing.T) {
	summary := places.Summary{Total: 3, Correct: 1}
	require.Equal(t, "Correct: 1 out of 3: 33.33%", summary.String())
}

func TestGenerationRun(t *testing.T) {
	path := writeCorpus(t, "Where was Alice born?\tParis\nWhere was Bob born?\tLondon\n")
	outputs := filepath.Join(t.TempDir(), "predictions.txt")

	// Echo the prompt with the scripted answer between sentinels, the way
	// a char-level model that continues its own context would.
	mock := model.MockModel{ResponseFn: func(prompt string) string {
		answer := "Berlin"
		if strings.Contains(prompt, "Alice") {
			answer = "Paris"
		}
		if strings.Contains(prompt, "Bob") {
			answer = "London"
		}
		return prompt + answer + "⁇"
	}}

	run := places.GenerationRun{
		Corpus:  path,
		Outputs: outputs,
		Model:   mock,
		Workers: 2,
	}
	summary, report, err := run.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, summary.Total)
	require.Equal(t, 2, summary.Correct)
	require.Equal(t, []string{"Paris", "London"}, report.Predictions())

	written, err := os.ReadFile(outputs)
	require.NoError(t, err)
	require.Equal(t, "Paris\nLondon\n", string(written))
}

func TestGenerationRunLenient(t *testing.T) {
	path := writeCorpus(t, "q\tLondon\n")

	mock := model.MockModel{ResponseFn: func(prompt string) string {
		return prompt + "london" + "⁇"
	}}

	strict := places.GenerationRun{Corpus: path, Model: mock}
	summary, _, err := strict.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Correct)

	lenient := places.GenerationRun{Corpus: path, Model: mock, Lenient: true}
	summary, _, err = lenient.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Correct)
}

func TestGenerationRunMalformedCorpus(t *testing.T) {
	path := writeCorpus(t, "q\tParis\nno tab here\n")

	run := places.GenerationRun{Corpus: path, Model: model.MockModel{}}
	_, _, err := run.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "record 2")
}

func TestGenerationRunRequiresModel(t *testing.T) {
	path := writeCorpus(t, "q\tParis\n")

	run := places.GenerationRun{Corpus: path}
	_, _, err := run.Run(context.Background())
	require.Error(t, err)
}

func TestWritePredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, places.WritePredictions(path, []string{"a", "b"}))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(written))
}
