package textgen

import (
	"context"
	"fmt"

	"studybridge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GoogleAIGenerator implements domain.TextGenerator against the Gemini API
// via langchaingo. Quota errors pass through untouched so callers can detect
// them with domain.IsQuotaSignal.
type GoogleAIGenerator struct {
	llm         *googleai.GoogleAI
	modelName   string
	temperature float64
	logger      *zap.Logger
}

// NewGoogleAIGenerator creates a new instance of GoogleAIGenerator.
func NewGoogleAIGenerator(ctx context.Context, apiKey, modelName string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("googleai API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("googleai model name cannot be empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create googleai client: %w", err)
	}

	logger.Info("Initialized GoogleAI text generator", zap.String("model", modelName))
	return &GoogleAIGenerator{
		llm:         llm,
		modelName:   modelName,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// GenerateText implements domain.TextGenerator
func (g *GoogleAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		g.logger.Error("GoogleAI generation failed",
			zap.String("model", g.modelName),
			zap.Error(err),
		)
		return "", err
	}
	return response, nil
}

var _ domain.TextGenerator = (*GoogleAIGenerator)(nil)
