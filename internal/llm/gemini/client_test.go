package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"resumegenius-backend/internal/llm"
)

func TestToGenaiSchemaConvertsTree(t *testing.T) {
	in := &llm.Schema{
		Type:     llm.TypeObject,
		Ordering: []string{"name", "tags"},
		Required: []string{"name"},
		Properties: map[string]*llm.Schema{
			"name": {Type: llm.TypeString, Description: "full name"},
			"nick": {Type: llm.TypeString, Nullable: true},
			"tags": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
			"ok":   {Type: llm.TypeBoolean},
		},
	}

	out := toGenaiSchema(in)
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"name"}, out.Required)
	assert.Equal(t, []string{"name", "tags"}, out.PropertyOrdering)
	assert.Equal(t, "full name", out.Properties["name"].Description)
	assert.Nil(t, out.Properties["name"].Nullable)
	require.NotNil(t, out.Properties["nick"].Nullable)
	assert.True(t, *out.Properties["nick"].Nullable)
	assert.Equal(t, genai.TypeArray, out.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, out.Properties["tags"].Items.Type)
	assert.Equal(t, genai.TypeBoolean, out.Properties["ok"].Type)
}

func TestToGenaiSchemaNil(t *testing.T) {
	assert.Nil(t, toGenaiSchema(nil))
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(llm.GenerateRequest{
		SystemInstruction: "be brief",
		Prompt:            "hello",
		Schema:            &llm.Schema{Type: llm.TypeObject},
		Temperature:       0.1,
		TopK:              40,
	})
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.1, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.TopK)
	assert.Equal(t, float32(40), *cfg.TopK)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
}

func TestHashPromptDeterministic(t *testing.T) {
	a := hashPrompt("sys", "prompt")
	assert.Equal(t, a, hashPrompt("sys", "prompt"))
	assert.NotEqual(t, a, hashPrompt("sys", "other prompt"))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), " ", "")
	assert.Error(t, err)
}
