package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModelInfoByID(t *testing.T) {
	info := GetModelInfo("gpt-4o")
	require.NotNil(t, info)
	assert.Equal(t, "openai", info.Provider)
	assert.True(t, info.SupportsTools)
}

func TestGetModelInfoByAlias(t *testing.T) {
	info := GetModelInfo("claude-3-5-sonnet")
	require.NotNil(t, info)
	assert.Equal(t, "claude-3-5-sonnet-20240620", info.ID)
	assert.Equal(t, "anthropic", info.Provider)
}

func TestGetModelInfoUnknown(t *testing.T) {
	assert.Nil(t, GetModelInfo("mystery-model"))
}

func TestListModelsAll(t *testing.T) {
	all := ListModels("")
	assert.Len(t, all, len(Models))
}

func TestListModelsByProvider(t *testing.T) {
	openai := ListModels("openai")
	require.NotEmpty(t, openai)
	for _, m := range openai {
		assert.Equal(t, "openai", m.Provider)
	}

	assert.Empty(t, ListModels("acme"))
}
