package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"territorylab/internal/config"
	"territorylab/internal/genclient"
	"territorylab/internal/studio"
)

func main() {
	brief := flag.String("brief", "", "creative brief text")
	briefFile := flag.String("brief-file", "", "path to a file containing the brief")
	provider := flag.String("provider", "", "override generation provider: gemini, openai, fake")
	out := flag.String("out", "", "write the result JSON to this file instead of stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *provider != "" {
		cfg.Provider = *provider
	}

	text := *brief
	if text == "" && *briefFile != "" {
		b, err := os.ReadFile(*briefFile)
		if err != nil {
			log.Fatal(err)
		}
		text = string(b)
	}
	if text == "" {
		log.Fatal("--brief or --brief-file is required")
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, err := buildClient(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	st, err := studio.New(client, logger)
	if err != nil {
		log.Fatal(err)
	}

	res, err := st.Generate(ctx, text)
	if err != nil {
		log.Fatal(err)
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if *out != "" {
		if err := os.WriteFile(*out, b, 0o644); err != nil {
			log.Fatal(err)
		}
		return
	}
	fmt.Println(string(b))
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProductionConfig().Build()
}

func buildClient(ctx context.Context, cfg *config.Config) (genclient.GenerationClient, error) {
	switch cfg.Provider {
	case "gemini":
		return genclient.NewGeminiClient(ctx, cfg.Gemini.TextModel, cfg.Gemini.ImageModel, cfg.Gemini.RPS, cfg.Gemini.Burst)
	case "openai":
		return genclient.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.TextModel, cfg.OpenAI.ImageModel, cfg.OpenAI.BaseURL)
	case "fake":
		return &genclient.Fake{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
