package genclient

import (
	"context"
	"encoding/base64"

	genai "google.golang.org/genai"

	t "territorylab/internal/types"
)

// Mobile-first creative: every image is generated portrait 9:16.
const imageAspectRatio = "9:16"

// GeminiClient is a thin wrapper around the official genai client. It focuses
// on the API calls themselves; batching, retries and backoff are owned by the
// orchestration layer.
type GeminiClient struct {
	cli        *genai.Client
	textModel  string
	imageModel string
	rl         *rpsLimiter
}

// NewGeminiClient builds a client for one text model and one image model.
// The genai SDK reads GEMINI_API_KEY from the environment. rps <= 0 disables
// the request limiter.
func NewGeminiClient(ctx context.Context, textModel, imageModel string, rps float64, burst int) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		cli:        cli,
		textModel:  textModel,
		imageModel: imageModel,
		rl:         newRPSLimiter(rps, burst),
	}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.textModel }

func (g *GeminiClient) Close() error {
	g.rl.Stop()
	return nil
}

// GenerateText performs a single GenerateContent call asking for
// application/json and validates the document at the boundary.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (t.RawOutput, error) {
	if err := g.rl.Acquire(ctx); err != nil {
		return t.RawOutput{}, &ProviderError{Provider: g.Name(), Op: "generateText", Err: err}
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return t.RawOutput{}, &ProviderError{Provider: g.Name(), Op: "generateText", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return t.RawOutput{}, &ParseError{Reason: "empty response"}
	}
	return ParseRawOutput([]byte(resp.Candidates[0].Content.Parts[0].Text))
}

// GenerateImage performs a single GenerateImages call. One prompt, one image.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (t.ImageRef, error) {
	if err := g.rl.Acquire(ctx); err != nil {
		return t.ImageRef{}, &ProviderError{Provider: g.Name(), Op: "generateImage", Err: err}
	}
	resp, err := g.cli.Models.GenerateImages(ctx, g.imageModel, prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    imageAspectRatio,
		},
	)
	if err != nil {
		return t.ImageRef{}, &ProviderError{Provider: g.Name(), Op: "generateImage", Err: err}
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return t.ImageRef{}, &ParseError{Reason: "no image in response"}
	}
	img := resp.GeneratedImages[0].Image
	if img.GCSURI != "" {
		return t.ImageRef{URL: img.GCSURI}, nil
	}
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return t.ImageRef{URL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes)}, nil
}
