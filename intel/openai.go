// ABOUTME: OpenAI-backed TextGenerator implementation
// ABOUTME: Single blocking completion call per request, no internal retries
package intel

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.GPT4oMini

// OpenAIGenerator implements TextGenerator on the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAIGenerator builds a generator. An empty API key is allowed here so
// the process can start without configuration; Generate reports
// ErrMissingAPIKey at call time instead.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		apiKey: apiKey,
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, hint ResponseHint) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if hint == HintJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
