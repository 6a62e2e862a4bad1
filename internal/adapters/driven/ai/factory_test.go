package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
	}{
		{"nil settings", nil},
		{"empty settings", &domain.EmbeddingSettings{}},
		{"cloud provider without API key", &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			require.NoError(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close() //nolint:errcheck

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_OllamaUnknownModelDimensions(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "some-new-model",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close() //nolint:errcheck

	// Unknown models fall back to the adapter default.
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-large",
		APIKey:   "sk-test",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close() //nolint:errcheck

	assert.Equal(t, "text-embedding-3-large", svc.ModelName())
	assert.Equal(t, 3072, svc.Dimensions())
}

func TestCreateEmbeddingService_AnthropicRejected(t *testing.T) {
	_, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-ant-test",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embeddings")
}

func TestCreateLLMService_Unconfigured(t *testing.T) {
	svc, err := CreateLLMService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateLLMService(&domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_Providers(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.LLMSettings
	}{
		{"ollama", domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}},
		{"openai", domain.LLMSettings{Provider: domain.AIProviderOpenAI, Model: "gpt-4o-mini", APIKey: "sk-test"}},
		{"anthropic", domain.LLMSettings{Provider: domain.AIProviderAnthropic, Model: "claude-3-5-sonnet-latest", APIKey: "sk-ant-test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(&tt.settings)
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close() //nolint:errcheck

			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateAndValidate_UnconfiguredIsNotAnError(t *testing.T) {
	embedder, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, embedder)

	llm, err := CreateAndValidateLLMService(&domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, llm)
}

func TestValidateConfigs_UnconfiguredSkipsPing(t *testing.T) {
	assert.NoError(t, ValidateEmbeddingConfig(nil))
	assert.NoError(t, ValidateEmbeddingConfig(&domain.EmbeddingSettings{}))
	assert.NoError(t, ValidateLLMConfig(nil))
	assert.NoError(t, ValidateLLMConfig(&domain.LLMSettings{}))
}
