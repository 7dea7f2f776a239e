// Package runlog persists evaluation runs: a single JSON file, or a zip
// archive with a header plus one file per sample for large corpora.
package runlog

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"placeval/pkg/core"
)

const timeLayout = time.RFC3339

type RunLog struct {
	Version     int          `json:"version"`
	RunID       string       `json:"run_id"`
	Status      string       `json:"status"`
	Task        string       `json:"task"`
	Model       string       `json:"model"`
	Scorer      string       `json:"scorer"`
	Dataset     DatasetInfo  `json:"dataset"`
	Metrics     core.Metrics `json:"metrics"`
	Samples     []SampleLog  `json:"samples,omitempty"`
	StartedAt   string       `json:"started_at"`
	CompletedAt string       `json:"completed_at"`
}

type DatasetInfo struct {
	Name    string `json:"name"`
	Samples int    `json:"samples"`
}

type SampleLog struct {
	ID           int     `json:"id"`
	UUID         string  `json:"uuid"`
	Input        string  `json:"input"`
	Target       string  `json:"target"`
	Prediction   string  `json:"prediction"`
	Value        float64 `json:"value"`
	Correct      bool    `json:"correct"`
	Error        string  `json:"error,omitempty"`
	TotalSeconds float64 `json:"total_seconds"`
}

// FromReport converts an evaluation report into its persisted form.
func FromReport(report core.EvalReport) RunLog {
	status := "success"
	samples := make([]SampleLog, 0, len(report.Results))
	for idx, result := range report.Results {
		if result.Error != "" {
			status = "error"
		}
		samples = append(samples, SampleLog{
			ID:           idx + 1,
			UUID:         uuid.NewString(),
			Input:        result.Sample.Input,
			Target:       result.Sample.Expected,
			Prediction:   result.Response.Content,
			Value:        result.Score.Value,
			Correct:      result.Score.Passed,
			Error:        result.Error,
			TotalSeconds: result.Duration.Seconds(),
		})
	}

	startedAt := report.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	completedAt := report.FinishedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	return RunLog{
		Version: 1,
		RunID:   uuid.NewString(),
		Status:  status,
		Task:    report.TaskName,
		Model:   report.ModelName,
		Scorer:  report.ScorerName,
		Dataset: DatasetInfo{
			Name:    report.TaskName,
			Samples: len(report.Results),
		},
		Metrics:     report.Metrics,
		Samples:     samples,
		StartedAt:   startedAt.UTC().Format(timeLayout),
		CompletedAt: completedAt.UTC().Format(timeLayout),
	}
}

// WriteJSON writes the full log as one indented JSON file and returns its
// path.
func WriteJSON(logDir string, log RunLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "json"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArchive writes the log as a zip: header.json without samples, and
// samples/N.json per record.
func WriteArchive(logDir string, log RunLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "zip"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)

	header := log
	header.Samples = nil
	if err := writeZipJSON(zipWriter, "header.json", header); err != nil {
		zipWriter.Close()
		return "", err
	}
	for _, sample := range log.Samples {
		name := fmt.Sprintf("samples/%d.json", sample.ID)
		if err := writeZipJSON(zipWriter, name, sample); err != nil {
			zipWriter.Close()
			return "", err
		}
	}
	if err := zipWriter.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// ReadJSON loads a log written by WriteJSON.
func ReadJSON(path string) (RunLog, error) {
	var log RunLog
	f, err := os.Open(path)
	if err != nil {
		return RunLog{}, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&log); err != nil {
		return RunLog{}, err
	}
	return log, nil
}

// ReadArchive loads a log written by WriteArchive, reassembling samples.
func ReadArchive(path string) (RunLog, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return RunLog{}, err
	}
	defer reader.Close()

	var log RunLog
	for _, f := range reader.File {
		if f.Name != "header.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return RunLog{}, err
		}
		err = json.NewDecoder(rc).Decode(&log)
		rc.Close()
		if err != nil {
			return RunLog{}, err
		}
		break
	}

	for _, f := range reader.File {
		if filepath.Dir(f.Name) != "samples" || filepath.Ext(f.Name) != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return RunLog{}, err
		}
		var sample SampleLog
		decodeErr := json.NewDecoder(rc).Decode(&sample)
		rc.Close()
		if decodeErr != nil {
			return RunLog{}, decodeErr
		}
		log.Samples = append(log.Samples, sample)
	}
	return log, nil
}

func writeZipJSON(writer *zip.Writer, name string, data any) error {
	entry, err := writer.Create(name)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(entry)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func buildLogFileName(log RunLog, ext string) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	task := sanitizeName(log.Task)
	model := sanitizeName(log.Model)
	if task == "" {
		task = "task"
	}
	if model == "" {
		model = "model"
	}
	return fmt.Sprintf("%s_%s_%s.%s", timestamp, task, model, ext)
}

func sanitizeName(input string) string {
	var out strings.Builder
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out.WriteRune(r)
		}
	}
	return out.String()
}
