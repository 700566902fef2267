package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptManagerLoadsTemplates(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)
	require.NotNil(t, pm)

	for _, variant := range []string{"easy", "medium", "hard"} {
		prompt, err := pm.BuildPrompt("questions", variant, nil)
		require.NoError(t, err)
		assert.Contains(t, prompt, "interview questions")
	}
}

func TestBuildPromptSubstitutesVariables(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	prompt, err := pm.BuildPrompt("questions", "medium", map[string]string{
		"JobRole":        "Data Engineer",
		"JobDescription": "Build pipelines.",
		"FocusAreas":     "technical",
		"Count":          "5",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Data Engineer")
	assert.Contains(t, prompt, "exactly 5")
	assert.NotContains(t, prompt, "{{.JobRole}}")
}

func TestBuildPromptUnknownTemplate(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.BuildPrompt("nope", "default", nil)
	assert.Error(t, err)

	_, err = pm.BuildPrompt("questions", "nope", nil)
	assert.Error(t, err)
}
