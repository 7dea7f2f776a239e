package core

import "time"

// Response is a model response plus basic telemetry.
type Response struct {
	Content    string        `json:"content" yaml:"content"`
	TokenUsage TokenUsage    `json:"token_usage" yaml:"token_usage"`
	Latency    time.Duration `json:"latency" yaml:"latency"`
}

// TokenUsage captures token accounting for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" yaml:"total_tokens"`
}

// Score represents a numeric score and pass/fail status.
type Score struct {
	Value   float64 `json:"value" yaml:"value"`
	Max     float64 `json:"max" yaml:"max"`
	Passed  bool    `json:"passed" yaml:"passed"`
	Details string  `json:"details,omitempty" yaml:"details,omitempty"`
}

// EvalResult captures the outcome for one sample.
type EvalResult struct {
	Sample   Sample        `json:"sample" yaml:"sample"`
	Response Response      `json:"response" yaml:"response"`
	Score    Score         `json:"score" yaml:"score"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// EvalReport summarizes an evaluation run. Results are in dataset order.
type EvalReport struct {
	TaskName   string            `json:"task_name" yaml:"task_name"`
	ModelName  string            `json:"model_name" yaml:"model_name"`
	ScorerName string            `json:"scorer_name" yaml:"scorer_name"`
	Metrics    Metrics           `json:"metrics" yaml:"metrics"`
	Results    []EvalResult      `json:"results" yaml:"results"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
}

// Predictions returns the response contents in dataset order.
func (r EvalReport) Predictions() []string {
	out := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		out = append(out, result.Response.Content)
	}
	return out
}

// Metrics aggregates evaluation statistics. Accuracy is the fraction of
// passed samples; it is 0 for an empty run rather than NaN.
type Metrics struct {
	TotalSamples int           `json:"total_samples" yaml:"total_samples"`
	Correct      int           `json:"correct" yaml:"correct"`
	Accuracy     float64       `json:"accuracy" yaml:"accuracy"`
	AverageScore float64       `json:"average_score" yaml:"average_score"`
	P95Score     float64       `json:"p95_score" yaml:"p95_score"`
	TokenUsage   TokenUsage    `json:"token_usage" yaml:"token_usage"`
	AvgLatency   time.Duration `json:"avg_latency" yaml:"avg_latency"`
	P95Latency   time.Duration `json:"p95_latency" yaml:"p95_latency"`
}

// GenerateOptions controls model generation behavior. Temperature 0 means
// greedy decoding.
type GenerateOptions struct {
	Temperature  float32  `json:"temperature" yaml:"temperature"`
	MaxTokens    int      `json:"max_tokens" yaml:"max_tokens"`
	TopP         float32  `json:"top_p" yaml:"top_p"`
	Stop         []string `json:"stop" yaml:"stop"`
	SystemPrompt string   `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
}
