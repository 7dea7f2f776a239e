package scorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"placeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestExactMatchCaseSensitive(t *testing.T) {
	sc := ExactMatch{CaseSensitive: true}
	sample := core.Sample{Expected: "London"}

	score, err := sc.Score(context.Background(), sample, core.Response{Content: "London"})
	require.NoError(t, err)
	require.True(t, score.Passed)
	require.Equal(t, 1.0, score.Value)

	score, err = sc.Score(context.Background(), sample, core.Response{Content: "london"})
	require.NoError(t, err)
	require.False(t, score.Passed)
	require.Equal(t, 0.0, score.Value)
}

func TestExactMatchNormalized(t *testing.T) {
	sc := ExactMatch{CaseSensitive: false, NormalizeWhitespace: true}
	sample := core.Sample{Expected: "New York"}
	resp := core.Response{Content: "  new   york  "}

	score, err := sc.Score(context.Background(), sample, resp)
	require.NoError(t, err)
	require.True(t, score.Passed)
}

func TestIncludes(t *testing.T) {
	sc := Includes{CaseSensitive: false, NormalizeWhitespace: true}
	sample := core.Sample{Expected: "london"}
	resp := core.Response{Content: "She was born in London."}

	score, err := sc.Score(context.Background(), sample, resp)
	require.NoError(t, err)
	require.True(t, score.Passed)
}

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPlacesScoreFile(t *testing.T) {
	path := writeCorpus(t, "Alice\tParis\nBob\tLondon\nCarol\tMadrid\n")

	total, correct, err := NewPlaces().ScoreFile(path, []string{"Paris", "London", "Berlin"})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, 2, correct)
}

func TestPlacesCaseSensitivity(t *testing.T) {
	path := writeCorpus(t, "Bob\tLondon\n")

	total, correct, err := NewPlaces().ScoreFile(path, []string{"london"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 0, correct)

	lenient := Places{CaseSensitive: false, NormalizeWhitespace: true}
	_, correct, err = lenient.ScoreFile(path, []string{"london"})
	require.NoError(t, err)
	require.Equal(t, 1, correct)
}

func TestPlacesCountMismatch(t *testing.T) {
	path := writeCorpus(t, "Alice\tParis\nBob\tLondon\n")

	_, _, err := NewPlaces().ScoreFile(path, []string{"Paris"})
	require.Error(t, err)

	_, _, err = NewPlaces().ScoreFile(path, []string{"Paris", "London", "Rome"})
	require.Error(t, err)
}

func TestPlacesEmptyCorpus(t *testing.T) {
	path := writeCorpus(t, "")

	total, correct, err := NewPlaces().ScoreFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Equal(t, 0, correct)
}

func TestPlacesMalformedRecord(t *testing.T) {
	path := writeCorpus(t, "no tab\n")

	_, _, err := NewPlaces().ScoreFile(path, []string{"x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "record 1")
}
