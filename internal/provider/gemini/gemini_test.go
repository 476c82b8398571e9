package gemini

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func collect(t *testing.T, seq iter.Seq2[provider.Delta, error]) ([]provider.Delta, error) {
	t.Helper()
	var out []provider.Delta
	for d, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, nil
}

func TestGenerateStream_Text(t *testing.T) {
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	mock := &MockGeminiClient{
		GenerateContentStreamFunc: func(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
			gotModel, gotConfig = model, cfg
			return chunks(textChunk("Hello ", ""), textChunk("there!", genai.FinishReasonStop))
		},
	}
	temp := float32(0.2)
	p := New(mock, config.ModelConfig{Name: "gemini-2.5-flash", SystemInstruction: "Be brief.", Temperature: &temp})

	deltas, err := collect(t, p.GenerateStream(context.Background(), []provider.Message{{Role: provider.RoleUser, Content: "Hi"}}, nil))

	require.NoError(t, err)
	assert.Equal(t, []provider.Delta{
		{Text: "Hello "},
		{Text: "there!", FinishReason: provider.FinishReasonStop},
	}, deltas)
	assert.Equal(t, "gemini-2.5-flash", gotModel)
	assert.Equal(t, "Be brief.", gotConfig.SystemInstruction.Parts[0].Text)
	assert.Equal(t, &temp, gotConfig.Temperature)
	assert.Nil(t, gotConfig.Tools)
	assert.Len(t, gotConfig.SafetySettings, 4)
}

func TestGenerateStream_ToolCall(t *testing.T) {
	mock := &MockGeminiClient{
		GenerateContentStreamFunc: func(_ context.Context, _ string, _ []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
			require.Len(t, cfg.Tools, 1)
			require.Len(t, cfg.Tools[0].FunctionDeclarations, 1)
			assert.Equal(t, "read_file", cfg.Tools[0].FunctionDeclarations[0].Name)
			return chunks(&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{Text: "thinking about it", Thought: true},
						{
							FunctionCall:     &genai.FunctionCall{ID: "call-1", Name: "read_file", Args: map[string]any{"path": "src/App.jsx"}},
							ThoughtSignature: []byte("sig"),
						},
					}},
					FinishReason: genai.FinishReasonStop,
				}},
			})
		},
	}
	p := New(mock, config.ModelConfig{Name: "m"})
	decls := []tool.Declaration{{Name: "read_file", Description: "Read a file"}}

	deltas, err := collect(t, p.GenerateStream(context.Background(), nil, decls))

	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Empty(t, deltas[0].Text)
	assert.Equal(t, []provider.ToolCall{{
		ID:        "call-1",
		Name:      "read_file",
		Args:      map[string]any{"path": "src/App.jsx"},
		Signature: []byte("sig"),
	}}, deltas[0].ToolCalls)
}

func TestGenerateStream_Errors(t *testing.T) {
	tests := []struct {
		name   string
		stream iter.Seq2[*genai.GenerateContentResponse, error]
		want   error
	}{
		{
			name: "api error",
			stream: func(yield func(*genai.GenerateContentResponse, error) bool) {
				yield(nil, genai.APIError{Code: 503, Message: "overloaded"})
			},
			want: provider.ErrServiceUnavailable,
		},
		{
			name:   "safety block",
			stream: chunks(textChunk("", genai.FinishReasonSafety)),
			want:   provider.ErrContentBlocked,
		},
		{
			name: "prompt blocked",
			stream: chunks(&genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}),
			want: provider.ErrContentBlocked,
		},
		{
			name:   "malformed call",
			stream: chunks(textChunk("", genai.FinishReasonMalformedFunctionCall)),
			want:   provider.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGeminiClient{
				GenerateContentStreamFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
					return tt.stream
				},
			}
			p := New(mock, config.ModelConfig{Name: "m"})

			_, err := collect(t, p.GenerateStream(context.Background(), nil, nil))

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateStream_StopsWhenConsumerStops(t *testing.T) {
	produced := 0
	mock := &MockGeminiClient{
		GenerateContentStreamFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
			return func(yield func(*genai.GenerateContentResponse, error) bool) {
				for range 5 {
					produced++
					if !yield(textChunk("x", ""), nil) {
						return
					}
				}
			}
		},
	}
	p := New(mock, config.ModelConfig{Name: "m"})

	for range p.GenerateStream(context.Background(), nil, nil) {
		break
	}

	assert.Equal(t, 1, produced)
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      provider.ErrorCode
		retryable bool
	}{
		{"unauthorized", genai.APIError{Code: 401}, provider.ErrorCodeAuth, false},
		{"forbidden pointer", &genai.APIError{Code: 403}, provider.ErrorCodeAuth, false},
		{"rate limited", genai.APIError{Code: 429}, provider.ErrorCodeRateLimit, true},
		{"bad request", genai.APIError{Code: 400, Message: "bad schema"}, provider.ErrorCodeInvalidRequest, false},
		{"unavailable", genai.APIError{Code: 502}, provider.ErrorCodeUnavailable, true},
		{"other status", genai.APIError{Code: 418}, provider.ErrorCodeNetwork, true},
		{"transport", errors.New("dial tcp: connection refused"), provider.ErrorCodeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapGeminiError(tt.err)

			var perr *provider.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code)
			assert.Equal(t, tt.retryable, perr.Retryable)
		})
	}

	t.Run("context errors pass through", func(t *testing.T) {
		assert.Equal(t, context.Canceled, mapGeminiError(context.Canceled))
	})
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	_, err := APIKeyFromEnv()
	assert.ErrorIs(t, err, provider.ErrMissingAPIKey)

	t.Setenv("GOOGLE_API_KEY", "google")
	key, err := APIKeyFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "google", key)

	t.Setenv("GEMINI_API_KEY", "gemini")
	key, err = APIKeyFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gemini", key)
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", nil)
	assert.ErrorIs(t, err, provider.ErrMissingAPIKey)
}
