package runlog

import (
	"testing"
	"time"

	"placeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func sampleReport() core.EvalReport {
	return core.EvalReport{
		TaskName:   "places",
		ModelName:  "mock",
		ScorerName: "exact_match",
		Metrics: core.Metrics{
			TotalSamples: 2,
			Correct:      1,
			Accuracy:     0.5,
		},
		Results: []core.EvalResult{
			{
				Sample:   core.Sample{ID: "1", Input: "q1", Expected: "Paris"},
				Response: core.Response{Content: "Paris"},
				Score:    core.Score{Value: 1, Passed: true},
				Duration: 50 * time.Millisecond,
			},
			{
				Sample:   core.Sample{ID: "2", Input: "q2", Expected: "London"},
				Response: core.Response{Content: "Berlin"},
				Score:    core.Score{Value: 0},
				Duration: 70 * time.Millisecond,
			},
		},
		StartedAt:  time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 24, 10, 0, 5, 0, time.UTC),
	}
}

func TestFromReport(t *testing.T) {
	log := FromReport(sampleReport())

	require.Equal(t, 1, log.Version)
	require.NotEmpty(t, log.RunID)
	require.Equal(t, "success", log.Status)
	require.Equal(t, "places", log.Task)
	require.Equal(t, "mock", log.Model)
	require.Equal(t, "exact_match", log.Scorer)
	require.Equal(t, 2, log.Dataset.Samples)
	require.Equal(t, "2026-08-24T10:00:00Z", log.StartedAt)
	require.Equal(t, "2026-08-24T10:00:05Z", log.CompletedAt)

	require.Len(t, log.Samples, 2)
	require.Equal(t, 1, log.Samples[0].ID)
	require.Equal(t, "Paris", log.Samples[0].Prediction)
	require.True(t, log.Samples[0].Correct)
	require.False(t, log.Samples[1].Correct)
}

func TestFromReportErrorStatus(t *testing.T) {
	report := sampleReport()
	report.Results[1].Error = "boom"

	log := FromReport(report)
	require.Equal(t, "error", log.Status)
	require.Equal(t, "boom", log.Samples[1].Error)
}

func TestWriteReadJSON(t *testing.T) {
	dir := t.TempDir()
	log := FromReport(sampleReport())

	path, err := WriteJSON(dir, log)
	require.NoError(t, err)

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	require.Equal(t, log.RunID, loaded.RunID)
	require.Equal(t, log.Metrics, loaded.Metrics)
	require.Len(t, loaded.Samples, 2)
}

func TestWriteReadArchive(t *testing.T) {
	dir := t.TempDir()
	log := FromReport(sampleReport())

	path, err := WriteArchive(dir, log)
	require.NoError(t, err)

	loaded, err := ReadArchive(path)
	require.NoError(t, err)
	require.Equal(t, log.RunID, loaded.RunID)
	require.Len(t, loaded.Samples, 2)
	require.Equal(t, "London", loaded.Samples[1].Target)
}

func TestWriteJSONRequiresDir(t *testing.T) {
	_, err := WriteJSON("", RunLog{})
	require.Error(t, err)
}

func TestBuildLogFileName(t *testing.T) {
	name := buildLogFileName(RunLog{Task: "places/eval", Model: "gpt-4o"}, "json")
	require.Contains(t, name, "placeseval")
	require.Contains(t, name, "gpt-4o")
	require.NotContains(t, name, "/")
}
