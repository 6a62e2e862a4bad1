package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

func TestConfigValidator_UnconfiguredPasses(t *testing.T) {
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(nil))
	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{}))
	assert.NoError(t, v.ValidateLLM(nil))
	assert.NoError(t, v.ValidateLLM(&domain.LLMSettings{}))
}

func TestConfigValidator_AnthropicEmbeddingRejected(t *testing.T) {
	v := NewConfigValidator()

	err := v.ValidateEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-ant-test",
	})
	assert.Error(t, err)
}
