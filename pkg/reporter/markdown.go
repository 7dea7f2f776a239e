package reporter

import (
	"fmt"
	"io"

	"placeval/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report core.EvalReport) error {
	if _, err := fmt.Fprintf(r.Writer, "# Birthplace Evaluation\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Corpus: %s\n- Model: %s\n- Scorer: %s\n\n", report.TaskName, report.ModelName, report.ScorerName); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Metric | Value |\n|---|---|\n"); err != nil {
		return err
	}
	lines := []struct {
		Name  string
		Value string
	}{
		{"Total records", fmt.Sprintf("%d", report.Metrics.TotalSamples)},
		{"Correct", fmt.Sprintf("%d", report.Metrics.Correct)},
		{"Accuracy", fmt.Sprintf("%.2f%%", report.Metrics.Accuracy*100)},
		{"Average score", fmt.Sprintf("%.2f", report.Metrics.AverageScore)},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s |\n", line.Name, line.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Records\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| ID | Input | Expected | Prediction | Correct | Error |\n|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, result := range report.Results {
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %s | %s | %s | %t | %s |\n",
			result.Sample.ID,
			escapePipe(result.Sample.Input),
			escapePipe(result.Sample.Expected),
			escapePipe(result.Response.Content),
			result.Score.Passed,
			escapePipe(result.Error),
		); err != nil {
			return err
		}
	}
	return nil
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
