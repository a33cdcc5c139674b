// Package vertex generates review comments with Gemini models on Vertex AI.
package vertex

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

// Options configures the Vertex AI backend. Project and Location are
// mandatory: the client addresses a regional Vertex endpoint, not the public
// Gemini API.
type Options struct {
	Project         string
	Location        string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Generator implements the usecase Generator port against Vertex AI.
type Generator struct {
	client *genai.Client
	opts   Options
}

var _ review.Generator = (*Generator)(nil)

// New creates a Vertex AI generator. Credentials come from Application
// Default Credentials, so GOOGLE_APPLICATION_CREDENTIALS must resolve before
// this is called.
func New(ctx context.Context, opts Options) (*Generator, error) {
	if opts.Project == "" {
		return nil, fmt.Errorf("vertex: project is required")
	}
	if opts.Location == "" {
		return nil, fmt.Errorf("vertex: location is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("vertex: model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  opts.Project,
		Location: opts.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating vertex client: %w", err)
	}

	return &Generator{client: client, opts: opts}, nil
}

// Generate implements review.Generator with a single synchronous
// GenerateContent call. No tools, no streaming, no retry.
func (g *Generator) Generate(ctx context.Context, req review.GenerateRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.opts.Temperature),
		MaxOutputTokens: g.opts.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	response, err := g.client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("generating review with %s: %w", g.opts.Model, err)
	}

	text, err := extractText(response)
	if err != nil {
		return "", err
	}
	return text, nil
}

// extractText pulls the text parts out of the first candidate.
func extractText(response *genai.GenerateContentResponse) (string, error) {
	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("model returned an empty candidate (finish reason: %s)", candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("model returned no text (finish reason: %s)", candidate.FinishReason)
	}
	return text, nil
}
