package reporter

import (
	"fmt"
	"io"

	"placeval/pkg/core"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report core.EvalReport) error {
	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Metric", "Value"})
	table.Append([]string{"Total records", fmt.Sprintf("%d", report.Metrics.TotalSamples)})
	table.Append([]string{"Correct", fmt.Sprintf("%d", report.Metrics.Correct)})
	table.Append([]string{"Accuracy", fmt.Sprintf("%.2f%%", report.Metrics.Accuracy*100)})
	table.Append([]string{"Average score", fmt.Sprintf("%.2f", report.Metrics.AverageScore)})
	table.Append([]string{"Avg latency", report.Metrics.AvgLatency.String()})
	table.Append([]string{"P95 latency", report.Metrics.P95Latency.String()})
	table.Render()
	return nil
}
