// Package app wires configuration, model providers, the pipeline and the
// HTTP server together, and drives the one-shot CLI mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"moodgen/internal/config"
	"moodgen/internal/domain"
	"moodgen/internal/httpx"
	"moodgen/internal/integrations/huggingface"
	"moodgen/internal/integrations/llm"
	"moodgen/internal/pipeline"
	"moodgen/internal/prompt"
	"moodgen/internal/render"
	"moodgen/internal/sentiment"
	"moodgen/internal/server"
	"moodgen/internal/warmup"
)

// Warm pings may sit through a full cold model load.
const warmupPingTimeout = 2 * time.Minute

func Main() {
	configFlag := flag.String("config", "", "path to config.yaml (overrides CONFIG_PATH)")
	promptFlag := flag.String("prompt", "", "generate once for this prompt and exit instead of serving")
	sentimentFlag := flag.String("sentiment", "", "sentiment override for -prompt (positive, negative, neutral)")
	maxLengthFlag := flag.Int("max-length", 0, "max generation length in tokens for -prompt")
	presetFlag := flag.String("length-preset", "", "length preset for -prompt (short, medium, long)")
	variantsFlag := flag.Int("variants", 1, "number of variations to generate for -prompt")
	outFlag := flag.String("out", "", "output directory for -prompt (defaults to output_dir config)")
	flag.Parse()

	if *configFlag != "" {
		os.Setenv("CONFIG_PATH", *configFlag)
	}
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)

	classifier := buildClassifier(cfg)
	generator := buildGenerator(cfg)
	classifierProvider, classifierModel := classifier.Describe()
	generatorProvider, generatorModel := generator.Describe()
	log.Printf(
		"Config loaded. Classifier=%s/%s Generator=%s/%s ConfidenceThreshold=%.2f GenerationTimeout=%ds ExternalHTTPTimeout=%s",
		classifierProvider,
		classifierModel,
		generatorProvider,
		generatorModel,
		cfg.ConfidenceThreshold,
		cfg.Generator.TimeoutSeconds,
		appliedHTTPTimeout,
	)

	engine, err := prompt.NewEngine(cfg.Templates.Positive, cfg.Templates.Negative, cfg.Templates.Neutral)
	if err != nil {
		log.Fatalf("Invalid seed templates: %v", err)
	}

	pipe := pipeline.New(classifier, generator, sentiment.NewGate(cfg.ConfidenceThreshold), engine, pipeline.Options{
		SerializeClassifier: cfg.Classifier.Serialize,
		SerializeGenerator:  cfg.Generator.Serialize,
		GenerationTimeout:   time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
		Defaults: pipeline.Params{
			MaxLength:   cfg.Defaults.MaxLength,
			Temperature: cfg.Defaults.Temperature,
			TopK:        cfg.Defaults.TopK,
			TopP:        cfg.Defaults.TopP,
		},
	})

	if *promptFlag != "" {
		runOnce(cfg, pipe, oneShotOptions{
			prompt:    *promptFlag,
			sentiment: *sentimentFlag,
			maxLength: *maxLengthFlag,
			preset:    *presetFlag,
			variants:  *variantsFlag,
			outDir:    *outFlag,
		})
		return
	}

	var pingers []warmup.Pinger
	if p, ok := classifier.(warmup.Pinger); ok {
		pingers = append(pingers, p)
	}
	if p, ok := generator.(warmup.Pinger); ok {
		pingers = append(pingers, p)
	}
	warmup.Start(cfg.WarmupSchedule, pingers, warmupPingTimeout)

	srv := server.NewServer(cfg, pipe)
	done := runGracefulShutdown(srv)

	log.Println("Starting sentiment text generator...")
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	<-done
}

func buildClassifier(cfg config.Config) pipeline.Classifier {
	switch cfg.Classifier.Provider {
	case "openai":
		return llm.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.Classifier.Model, cfg.Classifier.MaxInputChars)
	default:
		return huggingface.NewClassifier(cfg.HFEndpoint, cfg.HFAPIToken, cfg.Classifier.Model, cfg.Classifier.MaxInputChars)
	}
}

func buildGenerator(cfg config.Config) pipeline.Generator {
	switch cfg.Generator.Provider {
	case "anthropic":
		return llm.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.Generator.Model)
	case "openai":
		return llm.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.Generator.Model)
	default:
		return huggingface.NewGenerator(cfg.HFEndpoint, cfg.HFAPIToken, cfg.Generator.Model)
	}
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		close(done)
	}()

	return done
}

type oneShotOptions struct {
	prompt    string
	sentiment string
	maxLength int
	preset    string
	variants  int
	outDir    string
}

func runOnce(cfg config.Config, pipe *pipeline.Pipeline, opts oneShotOptions) {
	var override domain.SentimentLabel
	if strings.TrimSpace(opts.sentiment) != "" {
		label, ok := domain.ParseSentimentLabel(opts.sentiment)
		if !ok {
			log.Fatalf("Unknown sentiment %q (want positive, negative or neutral)", opts.sentiment)
		}
		override = label
	}

	params := pipeline.Params{MaxLength: opts.maxLength}
	if opts.preset != "" {
		length, ok := cfg.Preset(opts.preset)
		if !ok {
			log.Fatalf("Unknown length preset %q (want short, medium or long)", opts.preset)
		}
		// An explicit -max-length beats the preset.
		if params.MaxLength == 0 {
			params.MaxLength = length
		}
	}

	results, err := pipe.RunVariants(context.Background(), opts.prompt, override, params, opts.variants)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	resolved := results[0].Sentiment
	if resolved.HasConfidence() {
		log.Printf("Sentiment: %s %s confidence=%.3f (%s)",
			resolved.Label, resolved.Label.Emoji(), resolved.Confidence, domain.ConfidenceInterpretation(resolved.Confidence))
	} else {
		log.Printf("Sentiment: %s %s (overridden)", resolved.Label, resolved.Label.Emoji())
	}

	var out strings.Builder
	for i, r := range results {
		text := render.DownloadText(r.Generation.CleanedText)
		if len(results) > 1 {
			fmt.Printf("--- variation %d ---\n%s", i+1, text)
		} else {
			fmt.Print(text)
		}
		out.WriteString(text)
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	path, err := render.WriteTextFile(out.String(), outDir, "")
	if err != nil {
		log.Fatalf("Writing output file: %v", err)
	}
	log.Printf("Saved to %s", path)
}
