// Package ai wraps the generative collaborator behind the two operations the
// journal needs: a short reflection on an entry and audio transcription.
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ReflectionFallback replaces a failed reflection; reflection errors never
// reach the user.
const ReflectionFallback = "Unable to generate reflection at this moment."

// reflectionEmpty is returned when the model answers with nothing at all.
const reflectionEmpty = "Keep writing to find your clarity."

// DefaultModel matches the model the first release shipped with.
const DefaultModel = "gemini-3-flash-preview"

const reflectPrompt = `You are a thoughtful, minimalist life coach. Analyze this journal entry and provide a brief, encouraging reflection (max 2 sentences) that helps the user find clarity. Entry: %q`

const transcribePrompt = "Please transcribe the following audio file exactly as spoken. Do not add any commentary."

// Collaborator is the generative text/audio service consumed by the journal.
type Collaborator interface {
	Reflect(ctx context.Context, entry string) (string, error)
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Close() error
}

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed Collaborator.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (Collaborator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &geminiClient{client: client, model: client.GenerativeModel(modelName)}, nil
}

func (c *geminiClient) Reflect(ctx context.Context, entry string) (string, error) {
	text, err := c.generate(ctx, genai.Text(fmt.Sprintf(reflectPrompt, entry)))
	if err != nil {
		return "", err
	}
	if text == "" {
		return reflectionEmpty, nil
	}
	return text, nil
}

func (c *geminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return c.generate(ctx,
		genai.Blob{MIMEType: mimeType, Data: audio},
		genai.Text(transcribePrompt),
	)
}

func (c *geminiClient) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}
	return string(text), nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}
