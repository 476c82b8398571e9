package gemini

import (
	"context"
	"iter"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/tool"
	"google.golang.org/genai"
)

// GeminiProvider streams completions from Google Gemini.
type GeminiProvider struct {
	client            GeminiClient
	modelName         string
	systemInstruction string
	temperature       *float32
}

// New creates a new GeminiProvider with the specified client and model settings.
func New(client GeminiClient, cfg config.ModelConfig) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	return &GeminiProvider{
		client:            client,
		modelName:         cfg.Name,
		systemInstruction: cfg.SystemInstruction,
		temperature:       cfg.Temperature,
	}
}

// Model returns the model name requests are sent to.
func (p *GeminiProvider) Model() string {
	return p.modelName
}

// GenerateStream sends the conversation and the tool schemas to Gemini and
// yields text and tool calls as they stream back. Errors are mapped to
// *provider.ProviderError, except context errors which pass through.
func (p *GeminiProvider) GenerateStream(ctx context.Context, messages []provider.Message, tools []tool.Declaration) iter.Seq2[provider.Delta, error] {
	contents := toGeminiContents(messages)
	cfg := p.generateConfig(tools)

	return func(yield func(provider.Delta, error) bool) {
		for resp, err := range p.client.GenerateContentStream(ctx, p.modelName, contents, cfg) {
			if err != nil {
				yield(provider.Delta{}, mapGeminiError(err))
				return
			}
			delta, err := fromGeminiChunk(resp)
			if err != nil {
				yield(provider.Delta{}, err)
				return
			}
			if !yield(delta, nil) {
				return
			}
		}
	}
}

func (p *GeminiProvider) generateConfig(tools []tool.Declaration) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
		Temperature:    p.temperature,
		Tools:          toGeminiTools(tools),
	}
	if p.systemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.systemInstruction}},
		}
	}
	return cfg
}
