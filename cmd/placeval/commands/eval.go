package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"placeval/pkg/cache"
	"placeval/pkg/core"
	"placeval/pkg/dataset"
	"placeval/pkg/model"
	"placeval/pkg/places"
	"placeval/pkg/reporter"
	"placeval/pkg/runlog"
	"placeval/pkg/solver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCommand() *cobra.Command {
	var (
		corpusPath     string
		outputsPath    string
		workers        int
		outputPath     string
		format         string
		modelName      string
		mockResponse   string
		provider       string
		solverName     string
		fewshotCount   int
		lenient        bool
		useCache       bool
		rateLimitRPS   float64
		rateLimitBurst int
		sampleTimeout  time.Duration
		maxTokens      int
		temperature    float64
		logDir         string
		logFormat      string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Generate predictions with a model and score them",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(corpusPath, appConfig.Corpus)
			if path == "" {
				return errors.New("corpus path is required")
			}
			outputsResolved := resolveString(outputsPath, appConfig.Outputs)
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = "table"
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			providerResolved := resolveString(provider, appConfig.Provider)
			if providerResolved == "" {
				providerResolved = "mock"
			}
			modelResolved := resolveString(modelName, appConfig.Model.Name)
			mockResolved := resolveString(mockResponse, appConfig.Model.MockResponse)
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "none"
			}
			workerCount := resolveInt(workers, appConfig.Workers, 1)
			lenientResolved := lenient || appConfig.Lenient

			evalModel, err := buildModel(providerResolved, modelResolved, mockResolved)
			if err != nil {
				return err
			}
			if useCache {
				generationCache, err := cache.New(appConfig.CacheDir, 0)
				if err != nil {
					return err
				}
				evalModel = model.CachedModel{Model: evalModel, Cache: generationCache}
			}

			opts := core.GenerateOptions{
				Temperature: float32(temperature),
				MaxTokens:   maxTokens,
			}
			sv, err := buildSolver(solverName, evalModel, opts, fewshotCount, path)
			if err != nil {
				return err
			}

			var rateLimiter core.RateLimiter
			if rateLimitRPS > 0 {
				limiter, stop, err := core.NewRateLimiter(rateLimitRPS, rateLimitBurst)
				if err != nil {
					return err
				}
				rateLimiter = limiter
				defer stop()
			}

			total := 0
			if count, err := dataset.NewFileDataset(path).Len(context.Background()); err == nil {
				total = count
			}
			progress := newProgressBar(progressWriter(cmd), total)

			logger.Info("running evaluation",
				zap.String("corpus", path),
				zap.String("provider", providerResolved),
				zap.String("model", evalModel.Name()),
				zap.Int("workers", workerCount),
			)

			run := places.GenerationRun{
				Corpus:        path,
				Outputs:       outputsResolved,
				Model:         evalModel,
				Solver:        sv,
				Options:       opts,
				Workers:       workerCount,
				RateLimiter:   rateLimiter,
				SampleTimeout: sampleTimeout,
				Lenient:       lenientResolved,
				Progress: func(completed, total int) {
					progress.Update(completed)
				},
			}

			summary, report, err := run.Run(context.Background())
			if err != nil {
				return err
			}
			if report.Metadata == nil {
				report.Metadata = map[string]string{}
			}
			report.Metadata["provider"] = providerResolved
			report.Metadata["solver"] = sv.Name()

			writer := cmd.OutOrStdout()
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(report); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				if logDirResolved == "" {
					logDirResolved = "./logs"
				}
				if err := writeRunLog(logFormatResolved, logDirResolved, report); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to the tab-separated evaluation corpus")
	cmd.Flags().StringVar(&outputsPath, "outputs", "", "file to write predictions to, one per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of workers")
	cmd.Flags().StringVar(&outputPath, "output", "", "report file path (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "report format (table, json, html, markdown, csv)")
	cmd.Flags().StringVar(&modelName, "model", "", "model name")
	cmd.Flags().StringVar(&mockResponse, "mock-response", "", "fixed mock response")
	cmd.Flags().StringVar(&provider, "provider", "", "model provider (mock, openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&solverName, "solver", "", "solver name (completion, basic, few-shot)")
	cmd.Flags().IntVar(&fewshotCount, "fewshot", 0, "number of few-shot examples from the corpus head")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "case-insensitive scoring with collapsed whitespace")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache generations on disk")
	cmd.Flags().Float64Var(&rateLimitRPS, "rate-limit-rps", 0, "max requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&rateLimitBurst, "rate-limit-burst", 1, "rate limit burst size")
	cmd.Flags().DurationVar(&sampleTimeout, "sample-timeout", 0, "per-sample timeout (0 = provider default)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max generated tokens (default 32)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature (0 = greedy)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (json, archive, none)")

	return cmd
}

func buildModel(provider, modelName, mockResponse string) (core.Model, error) {
	switch provider {
	case "mock":
		return model.MockModel{
			NameValue:    modelName,
			ResponseText: mockResponse,
		}, nil
	case "openai":
		openaiModel, err := model.NewOpenAIModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.OpenAI
		if cfg.Model != "" && modelName == "" {
			openaiModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			openaiModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			openaiModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			openaiModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return openaiModel, nil
	case "anthropic":
		anthropicModel, err := model.NewAnthropicModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Anthropic
		if cfg.Model != "" && modelName == "" {
			anthropicModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			anthropicModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			anthropicModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			anthropicModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		if cfg.MaxTokens > 0 {
			anthropicModel.MaxTokens = cfg.MaxTokens
		}
		return anthropicModel, nil
	case "gemini":
		geminiModel, err := model.NewGeminiModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Gemini
		if cfg.Model != "" && modelName == "" {
			geminiModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			geminiModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			geminiModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			geminiModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return geminiModel, nil
	case "ollama":
		cfg := appConfig.Ollama
		name := modelName
		if name == "" {
			name = cfg.Model
		}
		return model.NewOllamaModel(cfg.BaseURL, name)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func buildSolver(name string, m core.Model, opts core.GenerateOptions, fewshotCount int, corpusPath string) (core.Solver, error) {
	if name == "" {
		if fewshotCount > 0 {
			name = "few-shot"
		} else {
			name = "completion"
		}
	}
	switch name {
	case "completion":
		return solver.Completion{Model: m, Options: opts}, nil
	case "basic":
		return solver.Basic{Model: m, Options: opts}, nil
	case "few-shot":
		examples, err := loadFewShotExamples(context.Background(), corpusPath, fewshotCount)
		if err != nil {
			return nil, err
		}
		return solver.FewShot{Model: m, Options: opts, Examples: examples}, nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}

// loadFewShotExamples takes the first count records of the corpus as
// question/place example pairs.
func loadFewShotExamples(ctx context.Context, corpusPath string, count int) ([]solver.FewShotExample, error) {
	if count <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ds := dataset.NewFileDataset(corpusPath)
	sampleCh, errCh := ds.Samples(ctx)
	examples := make([]solver.FewShotExample, 0, count)

	for sample := range sampleCh {
		examples = append(examples, solver.FewShotExample{
			Input:  sample.Input,
			Output: sample.Expected,
		})
		if len(examples) >= count {
			cancel()
			break
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
	}

	if len(examples) == 0 {
		return nil, errors.New("few-shot: corpus returned no records")
	}
	return examples, nil
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeRunLog(format string, logDir string, report core.EvalReport) error {
	switch format {
	case "json":
		log := runlog.FromReport(report)
		_, err := runlog.WriteJSON(logDir, log)
		return err
	case "archive", "zip":
		log := runlog.FromReport(report)
		_, err := runlog.WriteArchive(logDir, log)
		return err
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
