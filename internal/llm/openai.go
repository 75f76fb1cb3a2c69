package llm

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the chat completions API with a strict json_schema
// response format.
type OpenAIClient struct {
	cli   *openai.Client
	model string
}

type OpenAIOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL string
}

func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{cli: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAIClient) Name() string { return "openai:" + o.model }
func (o *OpenAIClient) Close() error { return nil }

func (o *OpenAIClient) GenerateJSON(ctx context.Context, prompt, input string, schema *Schema) (json.RawMessage, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if schema != nil {
		def := schema.openAI()
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName(schema),
				Schema: &def,
				Strict: true,
			},
		}
	}

	resp, err := o.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, callError(o.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, callError(o.Name(), ErrEmptyResponse)
	}
	return decodeReply(o.Name(), resp.Choices[0].Message.Content)
}

func schemaName(s *Schema) string {
	if name := strings.TrimSpace(s.Title); name != "" {
		return name
	}
	return "response"
}
