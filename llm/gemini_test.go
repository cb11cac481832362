package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Pasal 362 "), genai.Text("KUHP")}},
		}},
	}
	text, err := candidateText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Pasal 362 KUHP", text)

	_, err = candidateText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = candidateText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
