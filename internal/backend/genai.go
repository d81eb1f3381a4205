package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/vide/internal/translation"
)

// GenAIBackend calls Gemini through the Google GenAI SDK
type GenAIBackend struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGenAIBackend creates a new Gemini backend
func NewGenAIBackend(ctx context.Context, config *Config) (*GenAIBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     config.GeminiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: config.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIBackend{
		client:      client,
		model:       config.ModelName(),
		temperature: config.Temperature,
	}, nil
}

// Invoke sends one GenerateContent request constrained to schema
func (b *GenAIBackend) Invoke(ctx context.Context, instructions string, schema *translation.Schema) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(instructions), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(b.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ToGenAISchema(schema),
	})
	if err != nil {
		return "", fmt.Errorf("%w: Gemini API error: %w", translation.ErrBackendRequest, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no response from Gemini", translation.ErrBackendRequest)
	}
	return text, nil
}

// ToGenAISchema converts a schema descriptor to the GenAI schema type
func ToGenAISchema(s *translation.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description:      s.Description,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
		Items:            ToGenAISchema(s.Items),
	}

	switch s.Type {
	case translation.TypeObject:
		out.Type = genai.TypeObject
	case translation.TypeArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = ToGenAISchema(prop)
		}
	}
	if s.MinItems != nil {
		out.MinItems = genai.Ptr(int64(*s.MinItems))
	}
	if s.MaxItems != nil {
		out.MaxItems = genai.Ptr(int64(*s.MaxItems))
	}

	return out
}
