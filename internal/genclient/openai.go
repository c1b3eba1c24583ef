package genclient

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	t "territorylab/internal/types"
)

// OpenAIClient implements GenerationClient using the official openai-go SDK:
// chat completions for the territory document, image generation for visuals.
type OpenAIClient struct {
	cli        openai.Client
	textModel  string
	imageModel string
}

// NewOpenAIClient builds an OpenAI-backed client. baseURL may be empty.
func NewOpenAIClient(apiKey, textModel, imageModel, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		cli:        openai.NewClient(opts...),
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

func (o *OpenAIClient) Name() string { return "OpenAI:" + o.textModel }
func (o *OpenAIClient) Close() error { return nil }

func (o *OpenAIClient) GenerateText(ctx context.Context, prompt string) (t.RawOutput, error) {
	resp, err := o.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.textModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a creative strategist. Respond with a single strict JSON document and nothing else."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return t.RawOutput{}, &ProviderError{Provider: o.Name(), Op: "generateText", Err: err}
	}
	if len(resp.Choices) == 0 {
		return t.RawOutput{}, &ParseError{Reason: "empty choices"}
	}
	return ParseRawOutput([]byte(resp.Choices[0].Message.Content))
}

func (o *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (t.ImageRef, error) {
	resp, err := o.cli.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(o.imageModel),
		// vertical mobile format, the closest size to 9:16
		Size: openai.ImageGenerateParamsSize1024x1792,
		N:    openai.Int(1),
	})
	if err != nil {
		return t.ImageRef{}, &ProviderError{Provider: o.Name(), Op: "generateImage", Err: err}
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return t.ImageRef{}, &ParseError{Reason: "no image in response"}
	}
	return t.ImageRef{URL: resp.Data[0].URL}, nil
}
