package textgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studybridge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGenerator implements domain.TextGenerator against a local Ollama
// server. Used for development so the pipeline can run without a Gemini key.
type OllamaGenerator struct {
	llm         *ollama.LLM
	temperature float64
	logger      *zap.Logger
}

// NewOllamaGenerator creates a new instance of OllamaGenerator.
func NewOllamaGenerator(serverURL, modelName string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	logger.Info("Initialized Ollama text generator",
		zap.String("server_url", serverURL),
		zap.String("model", modelName),
	)
	return &OllamaGenerator{
		llm:         llm,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// GenerateText implements domain.TextGenerator
func (g *OllamaGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := g.llm.Call(ctx, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("Ollama generation failed", zap.Error(err))
		return "", err
	}
	return response, nil
}

var _ domain.TextGenerator = (*OllamaGenerator)(nil)
